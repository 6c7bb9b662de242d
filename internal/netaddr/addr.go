package netaddr

import (
	"fmt"
	"net"
	"strings"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
)

// Family identifies the address family of an Address.
type Family uint8

const (
	FamilyUnknown Family = 0
	FamilyIPv4    Family = 4
	FamilyIPv6    Family = 6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "inet"
	case FamilyIPv6:
		return "inet6"
	default:
		return "unknown"
	}
}

// Bits returns the address width in bits, or 0 for an unknown family.
func (f Family) Bits() int {
	switch f {
	case FamilyIPv4:
		return 32
	case FamilyIPv6:
		return 128
	default:
		return 0
	}
}

// Address is an immutable CIDR address: an IP, a prefix length and the
// family derived from the textual form of the IP. Construct one with
// ParseCIDR or New; the zero value is not a valid address.
type Address struct {
	ip        string
	prefixLen int
	family    Family
}

// ParseCIDR builds an Address from "ip/prefix" notation. A bare IP without
// a prefix is accepted and gets the family's full prefix length (host).
func ParseCIDR(s string) (Address, error) {
	if !strings.Contains(s, "/") {
		fam := familyOf(s)
		if fam == FamilyUnknown {
			return Address{}, errors.NewInvalidAddressError(
				fmt.Sprintf("cannot parse %q as an IP address", s), nil)
		}
		return New(s, fam.Bits())
	}

	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		return Address{}, errors.NewInvalidAddressError(
			fmt.Sprintf("cannot parse %q as CIDR", s), err)
	}
	ones, _ := ipNet.Mask.Size()
	return New(ip.String(), ones)
}

// New builds an Address from an IP string and a prefix length.
func New(ip string, prefixLen int) (Address, error) {
	fam := familyOf(ip)
	if fam == FamilyUnknown {
		return Address{}, errors.NewInvalidAddressError(
			fmt.Sprintf("cannot parse %q as an IP address", ip), nil)
	}
	if prefixLen < 0 || prefixLen > fam.Bits() {
		return Address{}, errors.NewInvalidAddressError(
			fmt.Sprintf("prefix length %d out of range for %s address %q", prefixLen, fam, ip), nil)
	}

	// Canonicalize the textual form so equal addresses compare equal.
	canonical := net.ParseIP(ip).String()
	return Address{ip: canonical, prefixLen: prefixLen, family: fam}, nil
}

// familyOf derives the address family by syntactic inspection, confirmed
// by an actual parse under that family.
func familyOf(s string) Family {
	parsed := net.ParseIP(s)
	if parsed == nil {
		return FamilyUnknown
	}
	if strings.Contains(s, ":") {
		return FamilyIPv6
	}
	if parsed.To4() != nil {
		return FamilyIPv4
	}
	return FamilyUnknown
}

// IP returns the textual IP.
func (a Address) IP() string {
	return a.ip
}

// PrefixLen returns the prefix length.
func (a Address) PrefixLen() int {
	return a.prefixLen
}

// Family returns the derived address family.
func (a Address) Family() Family {
	return a.family
}

// IsHost reports whether the prefix covers exactly one address.
func (a Address) IsHost() bool {
	return a.prefixLen == a.family.Bits()
}

// IsUnspecified reports whether the IP is the family's any-address.
func (a Address) IsUnspecified() bool {
	return net.ParseIP(a.ip).IsUnspecified()
}

// CIDR returns the "ip/prefix" form.
func (a Address) CIDR() string {
	return fmt.Sprintf("%s/%d", a.ip, a.prefixLen)
}

// String returns the CIDR form.
func (a Address) String() string {
	return a.CIDR()
}

// Mask returns the netmask for the prefix length.
func (a Address) Mask() net.IPMask {
	return net.CIDRMask(a.prefixLen, a.family.Bits())
}

// Netmask returns the netmask in the family's textual address form
// (dotted-decimal for IPv4).
func (a Address) Netmask() string {
	return net.IP(a.Mask()).String()
}

// Network returns the network address (IP with host bits cleared).
func (a Address) Network() string {
	return net.ParseIP(a.ip).Mask(a.Mask()).String()
}

// IPNet returns the address as a *net.IPNet with host bits cleared.
func (a Address) IPNet() *net.IPNet {
	return &net.IPNet{
		IP:   net.ParseIP(a.ip).Mask(a.Mask()),
		Mask: a.Mask(),
	}
}

// Broadcast returns the directed broadcast address of the network. For
// IPv6, which has no broadcast, it returns the last address in the prefix.
func (a Address) Broadcast() string {
	ip := net.ParseIP(a.ip)
	if a.family == FamilyIPv4 {
		ip = ip.To4()
	}
	mask := a.Mask()
	out := make(net.IP, len(ip))
	for i := range ip {
		out[i] = ip[i]&mask[i] | ^mask[i]
	}
	return out.String()
}

// Equal reports whether two addresses have the same IP, prefix and family.
func (a Address) Equal(b Address) bool {
	return a.family == b.family && a.prefixLen == b.prefixLen && a.ip == b.ip
}
