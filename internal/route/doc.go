// Package route reads and mutates the FreeBSD routing information base.
//
// Snapshots are fetched per FIB through the net.route sysctl tree and
// decoded from the kernel's self-describing binary message format: each
// message is a fixed rt_msghdr followed by a variable sockaddr tail whose
// slots are selected by the rtm_addrs presence bitmask and individually
// aligned to the platform word size. Mutations (add, delete, flush) are
// encoded in the same format and written to a PF_ROUTE control socket;
// the kernel's acknowledgement is correlated by sequence number.
//
// The wire layout lives in layout.go and is shared by the decoder and the
// encoder. The syscall-facing pieces are freebsd-only; the codec itself is
// portable and fully testable off-system through the Fetcher, FibReader
// and ControlSocket seams on Table.
package route
