//go:build freebsd

package route

// New returns a Table wired to the running kernel: sysctl snapshot
// fetcher, sysctl FIB reader, PF_ROUTE control sockets and the OS
// interface table.
func New() *Table {
	return NewTableWith(NewFetcher(), NewFibReader(), OpenSocket, NewInterfaceResolver())
}
