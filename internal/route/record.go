package route

import (
	"net"
	"strings"

	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// RouteFlags is the rtm_flags bitset of a routing message.
type RouteFlags int32

// Route flags (RTF_*, FreeBSD values).
const (
	FlagUp        RouteFlags = 0x1
	FlagGateway   RouteFlags = 0x2
	FlagHost      RouteFlags = 0x4
	FlagReject    RouteFlags = 0x8
	FlagDynamic   RouteFlags = 0x10
	FlagModified  RouteFlags = 0x20
	FlagDone      RouteFlags = 0x40
	FlagStatic    RouteFlags = 0x800
	FlagBlackhole RouteFlags = 0x1000
	FlagProto2    RouteFlags = 0x4000
	FlagProto1    RouteFlags = 0x8000
	FlagFixedMTU  RouteFlags = 0x80000
	FlagPinned    RouteFlags = 0x100000
	FlagLocal     RouteFlags = 0x200000
	FlagBroadcast RouteFlags = 0x400000
	FlagMulticast RouteFlags = 0x800000
)

var flagNames = []struct {
	mask RouteFlags
	name string
}{
	{FlagUp, "up"},
	{FlagGateway, "gateway"},
	{FlagHost, "host"},
	{FlagReject, "reject"},
	{FlagDynamic, "dynamic"},
	{FlagModified, "modified"},
	{FlagStatic, "static"},
	{FlagBlackhole, "blackhole"},
	{FlagFixedMTU, "fixedmtu"},
	{FlagPinned, "pinned"},
	{FlagLocal, "local"},
	{FlagBroadcast, "broadcast"},
	{FlagMulticast, "multicast"},
}

// String renders the set flags as a comma-separated list, route(8) style.
func (f RouteFlags) String() string {
	var names []string
	for _, fl := range flagNames {
		if f&fl.mask != 0 {
			names = append(names, fl.name)
		}
	}
	return strings.Join(names, ",")
}

// Record is one decoded routing table entry. It is a point-in-time snapshot
// and is never mutated after decoding; deleting a route sends a new message
// to the kernel and does not touch previously returned records.
type Record struct {
	// Destination is the route destination, an IP in textual form.
	Destination string

	// Gateway is the next hop: an IP, or a MAC-48 in aa:bb:cc:dd:ee:ff
	// form when the kernel reported a link-layer gateway.
	Gateway string

	// Netmask is the destination netmask in textual address form. It is
	// empty for host routes, which carry no explicit netmask.
	Netmask string

	// Interface is the outgoing interface name when the dump carried a
	// link-level interface sockaddr; otherwise empty until resolved from
	// IfIndex by the caller.
	Interface string

	// IfIndex is the outgoing interface index from the message header.
	IfIndex int

	Flags  RouteFlags
	Family netaddr.Family

	// FIB identifies the routing table instance this record was fetched
	// from. The decoder does not know it; the fetching layer fills it in.
	FIB int

	// MTU is the path MTU metric, zero when unset.
	MTU uint64

	// Expire is the route expiry timestamp (seconds since the epoch),
	// zero for permanent routes.
	Expire int64
}

// IsActive reports whether the route is usable (RTF_UP).
func (r *Record) IsActive() bool {
	return r.Flags&FlagUp != 0
}

// IsDefault reports whether this is the default route: an unspecified
// destination with a zero-length prefix.
func (r *Record) IsDefault() bool {
	if r.IsHost() {
		return false
	}
	switch r.Destination {
	case "0.0.0.0":
		return r.Netmask == "" || r.Netmask == "0.0.0.0"
	case "::":
		return r.Netmask == "" || r.Netmask == "::"
	}
	return false
}

// IsHost reports whether this is a host route (single destination, no
// explicit netmask).
func (r *Record) IsHost() bool {
	return r.Flags&FlagHost != 0
}

// IsNetwork reports whether this is a network route. Every record is
// either a host route or a network route.
func (r *Record) IsNetwork() bool {
	return !r.IsHost()
}

// IsStatic reports whether the route was installed administratively.
func (r *Record) IsStatic() bool {
	return r.Flags&FlagStatic != 0
}

// PrefixLen returns the destination prefix length: the full address width
// for host routes, the netmask's leading-ones count otherwise.
func (r *Record) PrefixLen() int {
	if r.IsHost() {
		return r.Family.Bits()
	}
	if r.Netmask == "" {
		return 0
	}
	ip := net.ParseIP(r.Netmask)
	if ip == nil {
		return 0
	}
	var mask net.IPMask
	if v4 := ip.To4(); v4 != nil && r.Family != netaddr.FamilyIPv6 {
		mask = net.IPMask(v4)
	} else {
		mask = net.IPMask(ip.To16())
	}
	ones, _ := mask.Size()
	return ones
}

// DestinationCIDR returns the destination in "ip/prefix" form.
func (r *Record) DestinationCIDR() string {
	addr, err := netaddr.New(r.Destination, r.PrefixLen())
	if err != nil {
		return r.Destination
	}
	return addr.CIDR()
}
