package netaddr

import (
	"testing"
)

func TestParseCIDR(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIP    string
		wantLen   int
		wantFam   Family
		wantError bool
	}{
		{"IPv4 network", "192.168.1.0/24", "192.168.1.0", 24, FamilyIPv4, false},
		{"IPv4 host without prefix", "10.0.0.1", "10.0.0.1", 32, FamilyIPv4, false},
		{"IPv4 any", "0.0.0.0/0", "0.0.0.0", 0, FamilyIPv4, false},
		{"IPv6 network", "2001:db8::/32", "2001:db8::", 32, FamilyIPv6, false},
		{"IPv6 host without prefix", "::1", "::1", 128, FamilyIPv6, false},
		{"IPv6 any", "::/0", "::", 0, FamilyIPv6, false},
		{"garbage", "not-an-ip", "", 0, FamilyUnknown, true},
		{"prefix out of range", "10.0.0.0/40", "", 0, FamilyUnknown, true},
		{"empty", "", "", 0, FamilyUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseCIDR(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseCIDR(%q) expected error, got %v", tt.input, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCIDR(%q) unexpected error: %v", tt.input, err)
			}
			if addr.IP() != tt.wantIP {
				t.Errorf("IP() = %q, want %q", addr.IP(), tt.wantIP)
			}
			if addr.PrefixLen() != tt.wantLen {
				t.Errorf("PrefixLen() = %d, want %d", addr.PrefixLen(), tt.wantLen)
			}
			if addr.Family() != tt.wantFam {
				t.Errorf("Family() = %v, want %v", addr.Family(), tt.wantFam)
			}
		})
	}
}

func TestNew_PrefixBounds(t *testing.T) {
	if _, err := New("10.0.0.1", 32); err != nil {
		t.Errorf("New(10.0.0.1, 32) unexpected error: %v", err)
	}
	if _, err := New("10.0.0.1", 33); err == nil {
		t.Errorf("New(10.0.0.1, 33) expected error")
	}
	if _, err := New("2001:db8::1", 128); err != nil {
		t.Errorf("New(2001:db8::1, 128) unexpected error: %v", err)
	}
	if _, err := New("2001:db8::1", 129); err == nil {
		t.Errorf("New(2001:db8::1, 129) expected error")
	}
	if _, err := New("10.0.0.1", -1); err == nil {
		t.Errorf("New(10.0.0.1, -1) expected error")
	}
}

func TestAddress_Netmask(t *testing.T) {
	tests := []struct {
		cidr string
		want string
	}{
		{"10.0.0.0/8", "255.0.0.0"},
		{"192.168.1.0/24", "255.255.255.0"},
		{"203.0.113.4/30", "255.255.255.252"},
		{"0.0.0.0/0", "0.0.0.0"},
		{"2001:db8::/64", "ffff:ffff:ffff:ffff::"},
	}

	for _, tt := range tests {
		addr, err := ParseCIDR(tt.cidr)
		if err != nil {
			t.Fatalf("ParseCIDR(%q): %v", tt.cidr, err)
		}
		if got := addr.Netmask(); got != tt.want {
			t.Errorf("Netmask(%q) = %q, want %q", tt.cidr, got, tt.want)
		}
	}
}

func TestAddress_Broadcast(t *testing.T) {
	tests := []struct {
		cidr string
		want string
	}{
		{"192.168.1.17/24", "192.168.1.255"},
		{"10.1.2.3/8", "10.255.255.255"},
		{"203.0.113.4/31", "203.0.113.5"},
	}

	for _, tt := range tests {
		addr, err := ParseCIDR(tt.cidr)
		if err != nil {
			t.Fatalf("ParseCIDR(%q): %v", tt.cidr, err)
		}
		if got := addr.Broadcast(); got != tt.want {
			t.Errorf("Broadcast(%q) = %q, want %q", tt.cidr, got, tt.want)
		}
	}
}

func TestAddress_Network(t *testing.T) {
	addr, err := ParseCIDR("192.168.1.17/24")
	if err != nil {
		t.Fatal(err)
	}
	if got := addr.Network(); got != "192.168.1.0" {
		t.Errorf("Network() = %q, want %q", got, "192.168.1.0")
	}
}

func TestAddress_IsHost(t *testing.T) {
	host, _ := ParseCIDR("10.0.0.1/32")
	network, _ := ParseCIDR("10.0.0.0/24")
	v6host, _ := ParseCIDR("::1/128")

	if !host.IsHost() {
		t.Errorf("Expected 10.0.0.1/32 to be a host address")
	}
	if network.IsHost() {
		t.Errorf("Expected 10.0.0.0/24 to not be a host address")
	}
	if !v6host.IsHost() {
		t.Errorf("Expected ::1/128 to be a host address")
	}
}

func TestAddress_IsUnspecified(t *testing.T) {
	any4, _ := ParseCIDR("0.0.0.0/0")
	any6, _ := ParseCIDR("::/0")
	regular, _ := ParseCIDR("10.0.0.1/32")

	if !any4.IsUnspecified() {
		t.Errorf("Expected 0.0.0.0 to be unspecified")
	}
	if !any6.IsUnspecified() {
		t.Errorf("Expected :: to be unspecified")
	}
	if regular.IsUnspecified() {
		t.Errorf("Expected 10.0.0.1 to not be unspecified")
	}
}

func TestAddress_Equal(t *testing.T) {
	a, _ := ParseCIDR("192.168.1.0/24")
	b, _ := New("192.168.1.0", 24)
	c, _ := ParseCIDR("192.168.1.0/25")

	if !a.Equal(b) {
		t.Errorf("Expected %v to equal %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("Expected %v to not equal %v", a, c)
	}
}

func TestAddress_Canonicalization(t *testing.T) {
	// Equivalent textual forms must canonicalize to the same IP.
	a, err := New("2001:0db8:0000:0000:0000:0000:0000:0001", 64)
	if err != nil {
		t.Fatal(err)
	}
	if a.IP() != "2001:db8::1" {
		t.Errorf("IP() = %q, want canonical %q", a.IP(), "2001:db8::1")
	}
}
