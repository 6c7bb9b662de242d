package api

import (
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
	"github.com/Ravenhammer-Research/freebsdnet/internal/route"
)

// RoutingTable is the subset of the route facade the API consumes. Tests
// substitute a mock.
type RoutingTable interface {
	GetEntries(fib int, family netaddr.Family) ([]route.Record, error)
	DefaultGateway(fib int, family netaddr.Family) (route.Record, error)
	AddEntry(destination, gateway, ifaceName string, extraFlags route.RouteFlags, fib int) error
	DeleteEntry(destination, gateway string, fib int) error
	Flush(fib int, family netaddr.Family) (int, error)
	FibCount() (int, error)
	DefaultFib() (int, error)
}

// RouteJSON is the wire representation of one route record.
type RouteJSON struct {
	Destination string `json:"destination"`
	Gateway     string `json:"gateway"`
	Netmask     string `json:"netmask,omitempty"`
	Interface   string `json:"interface,omitempty"`
	Flags       string `json:"flags"`
	FIB         int    `json:"fib"`
	Default     bool   `json:"default"`
	Host        bool   `json:"host"`
	Expire      int64  `json:"expire,omitempty"`
	MTU         uint64 `json:"mtu,omitempty"`
}

func toRouteJSON(rec route.Record) RouteJSON {
	return RouteJSON{
		Destination: rec.DestinationCIDR(),
		Gateway:     rec.Gateway,
		Netmask:     rec.Netmask,
		Interface:   rec.Interface,
		Flags:       rec.Flags.String(),
		FIB:         rec.FIB,
		Default:     rec.IsDefault(),
		Host:        rec.IsHost(),
		Expire:      rec.Expire,
		MTU:         rec.MTU,
	}
}

// AddRouteRequest is the POST /api/v1/routes body.
type AddRouteRequest struct {
	Destination string `json:"destination"`
	Gateway     string `json:"gateway"`
	Interface   string `json:"interface,omitempty"`
	FIB         *int   `json:"fib,omitempty"`
}

// DeleteRouteRequest is the DELETE /api/v1/routes body.
type DeleteRouteRequest struct {
	Destination string `json:"destination"`
	Gateway     string `json:"gateway,omitempty"`
	FIB         *int   `json:"fib,omitempty"`
}

// FibsJSON is the GET /api/v1/fibs response.
type FibsJSON struct {
	Count   int `json:"count"`
	Default int `json:"default"`
}

// InterfaceJSON is one entry of the GET /api/v1/interfaces response.
type InterfaceJSON struct {
	Name  string   `json:"name"`
	Index int      `json:"index"`
	MTU   int      `json:"mtu"`
	Up    bool     `json:"up"`
	Addrs []string `json:"addrs,omitempty"`
}
