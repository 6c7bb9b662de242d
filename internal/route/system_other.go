//go:build !freebsd

package route

import (
	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

type unsupported struct{}

func (unsupported) Fetch(fib int, family netaddr.Family) ([]byte, error) {
	return nil, errors.NewUnavailableError("routing tables require FreeBSD")
}

func (unsupported) FibCount() (int, error) {
	return 0, errors.NewUnavailableError("routing tables require FreeBSD")
}

func (unsupported) DefaultFib() (int, error) {
	return 0, errors.NewUnavailableError("routing tables require FreeBSD")
}

func openUnsupported(fib int) (ControlSocket, error) {
	return nil, errors.NewUnavailableError("routing sockets require FreeBSD")
}

// New returns a Table whose kernel-facing operations report UNAVAILABLE.
// Only the FreeBSD build talks to a real routing table.
func New() *Table {
	return NewTableWith(unsupported{}, unsupported{}, openUnsupported, NewInterfaceResolver())
}
