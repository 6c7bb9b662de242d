//go:build freebsd

package route

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// sysctl MIB components for the routing dump: CTL_NET, PF_ROUTE, 0,
// address family, NET_RT_DUMP, 0, fib.
const (
	ctlNet    = 4
	pfRoute   = 17
	netRTDump = 1
)

// sysctlFetcher fetches RIB snapshots through the net.route sysctl tree.
type sysctlFetcher struct{}

// NewFetcher returns the kernel-backed RIB snapshot fetcher.
func NewFetcher() Fetcher {
	return sysctlFetcher{}
}

// Fetch retrieves the routing table dump of one FIB. The sysctl protocol
// is two-phase: a null-buffer call reports the required size, a second
// call fills the buffer. The table can grow between the two calls, so a
// short-buffer result (ENOMEM) retries the whole exchange.
func (sysctlFetcher) Fetch(fib int, family netaddr.Family) ([]byte, error) {
	af := int32(afUnspec)
	switch family {
	case netaddr.FamilyIPv4:
		af = afInet
	case netaddr.FamilyIPv6:
		af = afInet6
	}
	mib := []int32{ctlNet, pfRoute, 0, af, netRTDump, 0, int32(fib)}

	for {
		var size uintptr
		if err := sysctlRaw(mib, nil, &size); err != nil {
			return nil, errors.NewSystemError(
				fmt.Sprintf("sizing routing dump for fib %d", fib), errnoOf(err), err)
		}
		if size == 0 {
			return nil, errors.NewUnavailableError(
				fmt.Sprintf("routing dump for fib %d reported zero length", fib))
		}

		buf := make([]byte, size)
		if err := sysctlRaw(mib, buf, &size); err != nil {
			if err == unix.ENOMEM {
				// The table grew between the two calls.
				continue
			}
			return nil, errors.NewSystemError(
				fmt.Sprintf("reading routing dump for fib %d", fib), errnoOf(err), err)
		}
		return buf[:size], nil
	}
}

// sysctlRaw issues one __sysctl call with an integer-vector name.
func sysctlRaw(mib []int32, old []byte, oldlen *uintptr) error {
	var oldp unsafe.Pointer
	if len(old) > 0 {
		oldp = unsafe.Pointer(&old[0])
	}
	_, _, errno := unix.Syscall6(unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])), uintptr(len(mib)),
		uintptr(oldp), uintptr(unsafe.Pointer(oldlen)),
		0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// errnoOf extracts the numeric OS error code, zero if there is none.
func errnoOf(err error) int {
	if errno, ok := err.(unix.Errno); ok {
		return int(errno)
	}
	return 0
}
