package route

import (
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// mockFetcher returns a canned dump buffer or error.
type mockFetcher struct {
	buf        []byte
	err        error
	lastFib    int
	lastFamily netaddr.Family
	calls      int
}

func (m *mockFetcher) Fetch(fib int, family netaddr.Family) ([]byte, error) {
	m.calls++
	m.lastFib = fib
	m.lastFamily = family
	return m.buf, m.err
}

// mockFibReader reports a fixed FIB configuration.
type mockFibReader struct {
	count      int
	defaultFib int
	err        error
}

func (m *mockFibReader) FibCount() (int, error) {
	return m.count, m.err
}

func (m *mockFibReader) DefaultFib() (int, error) {
	return m.defaultFib, m.err
}

// mockSocket records sent messages.
type mockSocket struct {
	sent    [][]byte
	seqs    []int
	sendErr error
	closed  bool
}

func (m *mockSocket) Send(msg []byte, seq int) error {
	m.sent = append(m.sent, msg)
	m.seqs = append(m.seqs, seq)
	return m.sendErr
}

func (m *mockSocket) Close() error {
	m.closed = true
	return nil
}

// mockOpener hands out one mock socket and records the fib it was opened
// for.
type mockOpener struct {
	sock    *mockSocket
	openErr error
	fibs    []int
}

func (m *mockOpener) open(fib int) (ControlSocket, error) {
	m.fibs = append(m.fibs, fib)
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.sock, nil
}

// mockResolver resolves from a fixed name/index table.
type mockResolver struct {
	byName  map[string]Iface
	byIndex map[int]Iface
}

func (m *mockResolver) ByName(name string) (Iface, error) {
	if ifi, ok := m.byName[name]; ok {
		return ifi, nil
	}
	return Iface{}, errors.NewUnknownInterfaceError(
		fmt.Sprintf("interface %q has no resolvable index", name), nil)
}

func (m *mockResolver) ByIndex(index int) (Iface, error) {
	if ifi, ok := m.byIndex[index]; ok {
		return ifi, nil
	}
	return Iface{}, errors.NewUnknownInterfaceError(
		fmt.Sprintf("no interface with index %d", index), nil)
}
