package route

import (
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// Fetcher retrieves a raw RIB snapshot for one FIB. A zero family fetches
// all address families.
type Fetcher interface {
	Fetch(fib int, family netaddr.Family) ([]byte, error)
}

// FibReader reads the kernel's FIB configuration scalars. Values are never
// cached: the configured FIB count can change between calls.
type FibReader interface {
	FibCount() (int, error)
	DefaultFib() (int, error)
}

// ControlSocket is an open routing control channel bound to one FIB.
type ControlSocket interface {
	// Send writes one encoded message and waits for the kernel reply
	// with the matching sequence number, surfacing rtm_errno as an error.
	Send(msg []byte, seq int) error
	Close() error
}

// SocketOpener opens a routing control socket whose mutations apply to the
// given FIB.
type SocketOpener func(fib int) (ControlSocket, error)

// Table is the routing table facade. Every operation is synchronous and
// opens its own kernel handles, so a Table can be shared between
// goroutines; concurrent mutations are serialized by the kernel, not here.
type Table struct {
	fetcher  Fetcher
	fibs     FibReader
	open     SocketOpener
	resolver InterfaceResolver
}

// NewTableWith assembles a Table from explicit collaborators. Production
// code uses New; tests substitute mocks.
func NewTableWith(fetcher Fetcher, fibs FibReader, open SocketOpener, resolver InterfaceResolver) *Table {
	return &Table{
		fetcher:  fetcher,
		fibs:     fibs,
		open:     open,
		resolver: resolver,
	}
}

// FibCount returns the number of configured FIBs (net.fibs).
func (t *Table) FibCount() (int, error) {
	return t.fibs.FibCount()
}

// DefaultFib returns the process default FIB (net.my_fibnum).
func (t *Table) DefaultFib() (int, error) {
	return t.fibs.DefaultFib()
}

// checkFib validates fib against the kernel's current FIB count. A fib of
// -1 selects the process default.
func (t *Table) checkFib(fib int) (int, error) {
	if fib == -1 {
		return t.fibs.DefaultFib()
	}
	count, err := t.fibs.FibCount()
	if err != nil {
		return 0, err
	}
	if fib < 0 || fib >= count {
		return 0, errors.NewValidationError(fmt.Sprintf(
			"fib %d out of range [0, %d]", fib, count-1), nil)
	}
	return fib, nil
}

// GetEntries fetches and decodes the routing table of one FIB, optionally
// restricted to one address family. Out-of-range fib values are an error,
// never an empty result.
func (t *Table) GetEntries(fib int, family netaddr.Family) ([]Record, error) {
	fib, err := t.checkFib(fib)
	if err != nil {
		return nil, err
	}

	buf, err := t.fetcher.Fetch(fib, family)
	if err != nil {
		return nil, err
	}

	records, err := DecodeRIB(buf)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].FIB = fib
		if records[i].Interface == "" && records[i].IfIndex > 0 {
			if ifi, err := t.resolver.ByIndex(records[i].IfIndex); err == nil {
				records[i].Interface = ifi.Name
			}
		}
	}

	log.Debugf("Decoded %d routes from fib %d", len(records), fib)
	return records, nil
}

// GetEntriesTo returns the entries whose destination exactly matches dest.
// This is a linear scan over a fresh snapshot; no index is maintained.
func (t *Table) GetEntriesTo(fib int, dest netaddr.Address) ([]Record, error) {
	records, err := t.GetEntries(fib, dest.Family())
	if err != nil {
		return nil, err
	}

	var matched []Record
	for _, rec := range records {
		if rec.Destination == dest.IP() && rec.PrefixLen() == dest.PrefixLen() {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// DefaultGateway scans one FIB for the active default route of the given
// family and returns it, or an UNAVAILABLE error if there is none.
func (t *Table) DefaultGateway(fib int, family netaddr.Family) (Record, error) {
	records, err := t.GetEntries(fib, family)
	if err != nil {
		return Record{}, err
	}
	for _, rec := range records {
		if rec.IsDefault() && rec.IsActive() {
			return rec, nil
		}
	}
	return Record{}, errors.NewUnavailableError(
		fmt.Sprintf("fib %d has no default route", fib))
}

// AddEntry installs a route to destination (CIDR or bare IP) via gateway.
// ifaceName may be empty; extraFlags is OR-ed into the standard add flags.
func (t *Table) AddEntry(destination, gateway, ifaceName string, extraFlags RouteFlags, fib int) error {
	fib, err := t.checkFib(fib)
	if err != nil {
		return err
	}

	dest, err := netaddr.ParseCIDR(destination)
	if err != nil {
		return err
	}

	var iface *Iface
	if ifaceName != "" {
		ifi, err := t.resolver.ByName(ifaceName)
		if err != nil {
			return err
		}
		iface = &ifi
	}

	msg, seq, err := EncodeAdd(dest, gateway, iface, extraFlags)
	if err != nil {
		return err
	}

	log.Debugf("Adding route %s via %s (fib %d)", dest, gateway, fib)
	return t.send(fib, msg, seq)
}

// DeleteEntry removes the route to destination. gateway may be empty.
func (t *Table) DeleteEntry(destination, gateway string, fib int) error {
	fib, err := t.checkFib(fib)
	if err != nil {
		return err
	}

	dest, err := netaddr.ParseCIDR(destination)
	if err != nil {
		return err
	}

	msg, seq, err := EncodeDelete(dest, gateway)
	if err != nil {
		return err
	}

	log.Debugf("Deleting route %s (fib %d)", dest, fib)
	return t.send(fib, msg, seq)
}

// Flush removes every gateway route of the given family from one FIB,
// route(8) style: interface, local, broadcast and pinned routes stay. The
// kernel has no single flush message, so this enumerates the FIB and
// deletes route by route; it returns on the first failed delete.
func (t *Table) Flush(fib int, family netaddr.Family) (int, error) {
	fib, err := t.checkFib(fib)
	if err != nil {
		return 0, err
	}

	records, err := t.GetEntries(fib, family)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, rec := range records {
		if rec.Flags&FlagGateway == 0 || rec.Flags&(FlagLocal|FlagBroadcast|FlagMulticast|FlagPinned) != 0 {
			continue
		}

		dest, err := netaddr.New(rec.Destination, rec.PrefixLen())
		if err != nil {
			log.Warnf("Skipping undeletable route %q: %v", rec.Destination, err)
			continue
		}
		if err := t.DeleteEntry(dest.CIDR(), "", fib); err != nil {
			return deleted, err
		}
		deleted++
	}

	log.Infof("Flushed %d routes from fib %d", deleted, fib)
	return deleted, nil
}

// send opens a control socket bound to fib, writes the message and waits
// for the kernel's acknowledgement. The socket is released on every path.
func (t *Table) send(fib int, msg []byte, seq int) error {
	sock, err := t.open(fib)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sock.Close(); cerr != nil {
			log.Warnf("Closing routing socket: %v", cerr)
		}
	}()

	return sock.Send(msg, seq)
}
