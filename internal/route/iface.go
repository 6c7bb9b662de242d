package route

import (
	"fmt"
	"net"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
)

// InterfaceResolver maps interface names to kernel indices and back. The
// routing layer consumes nothing else from the interface subsystem.
type InterfaceResolver interface {
	ByName(name string) (Iface, error)
	ByIndex(index int) (Iface, error)
}

// netResolver resolves interfaces through the operating system.
type netResolver struct{}

// NewInterfaceResolver returns a resolver backed by the OS interface table.
func NewInterfaceResolver() InterfaceResolver {
	return netResolver{}
}

func (netResolver) ByName(name string) (Iface, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return Iface{}, errors.NewUnknownInterfaceError(
			fmt.Sprintf("interface %q has no resolvable index", name), err)
	}
	return Iface{Name: ifi.Name, Index: ifi.Index}, nil
}

func (netResolver) ByIndex(index int) (Iface, error) {
	ifi, err := net.InterfaceByIndex(index)
	if err != nil {
		return Iface{}, errors.NewUnknownInterfaceError(
			fmt.Sprintf("no interface with index %d", index), err)
	}
	return Iface{Name: ifi.Name, Index: ifi.Index}, nil
}
