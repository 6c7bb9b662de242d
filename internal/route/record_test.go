package route

import (
	"testing"

	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

func TestRouteFlags_String(t *testing.T) {
	tests := []struct {
		flags RouteFlags
		want  string
	}{
		{FlagUp | FlagGateway, "up,gateway"},
		{FlagUp | FlagHost | FlagStatic, "up,host,static"},
		{FlagBlackhole, "blackhole"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("RouteFlags(%#x).String() = %q, want %q", int32(tt.flags), got, tt.want)
		}
	}
}

func TestRecord_IsDefault(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "IPv4 default",
			rec:  Record{Destination: "0.0.0.0", Family: netaddr.FamilyIPv4, Flags: FlagUp | FlagGateway},
			want: true,
		},
		{
			name: "IPv4 default with explicit zero mask",
			rec:  Record{Destination: "0.0.0.0", Netmask: "0.0.0.0", Family: netaddr.FamilyIPv4},
			want: true,
		},
		{
			name: "IPv6 default",
			rec:  Record{Destination: "::", Family: netaddr.FamilyIPv6, Flags: FlagUp | FlagGateway},
			want: true,
		},
		{
			name: "zero destination with nonzero mask",
			rec:  Record{Destination: "0.0.0.0", Netmask: "255.0.0.0", Family: netaddr.FamilyIPv4},
			want: false,
		},
		{
			name: "zero destination host route",
			rec:  Record{Destination: "0.0.0.0", Flags: FlagHost, Family: netaddr.FamilyIPv4},
			want: false,
		},
		{
			name: "regular network route",
			rec:  Record{Destination: "10.0.0.0", Netmask: "255.0.0.0", Family: netaddr.FamilyIPv4},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.IsDefault(); got != tt.want {
				t.Errorf("IsDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_HostNetworkExclusive(t *testing.T) {
	records := []Record{
		{Destination: "10.0.0.1", Flags: FlagUp | FlagHost, Family: netaddr.FamilyIPv4},
		{Destination: "10.0.0.0", Netmask: "255.0.0.0", Flags: FlagUp, Family: netaddr.FamilyIPv4},
		{Destination: "::", Flags: FlagUp | FlagGateway, Family: netaddr.FamilyIPv6},
		{},
	}

	for i, rec := range records {
		if rec.IsHost() == rec.IsNetwork() {
			t.Errorf("records[%d]: IsHost()=%v IsNetwork()=%v, want mutually exclusive and exhaustive",
				i, rec.IsHost(), rec.IsNetwork())
		}
	}
}

func TestRecord_PrefixLen(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{"IPv4 /24", Record{Netmask: "255.255.255.0", Family: netaddr.FamilyIPv4}, 24},
		{"IPv4 host", Record{Flags: FlagHost, Family: netaddr.FamilyIPv4}, 32},
		{"IPv6 host", Record{Flags: FlagHost, Family: netaddr.FamilyIPv6}, 128},
		{"IPv4 default", Record{Family: netaddr.FamilyIPv4}, 0},
		{"IPv6 /64", Record{Netmask: "ffff:ffff:ffff:ffff::", Family: netaddr.FamilyIPv6}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.PrefixLen(); got != tt.want {
				t.Errorf("PrefixLen() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecord_DestinationCIDR(t *testing.T) {
	rec := Record{Destination: "10.0.0.0", Netmask: "255.255.255.0", Family: netaddr.FamilyIPv4}
	if got := rec.DestinationCIDR(); got != "10.0.0.0/24" {
		t.Errorf("DestinationCIDR() = %q, want %q", got, "10.0.0.0/24")
	}

	host := Record{Destination: "192.0.2.7", Flags: FlagHost, Family: netaddr.FamilyIPv4}
	if got := host.DestinationCIDR(); got != "192.0.2.7/32" {
		t.Errorf("DestinationCIDR() = %q, want %q", got, "192.0.2.7/32")
	}
}

func TestRecord_IsActive(t *testing.T) {
	up := Record{Flags: FlagUp}
	down := Record{}

	if !up.IsActive() {
		t.Errorf("expected record with RTF_UP to be active")
	}
	if down.IsActive() {
		t.Errorf("expected record without RTF_UP to be inactive")
	}
}
