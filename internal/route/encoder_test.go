package route

import (
	stderrors "errors"
	"testing"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

func mustCIDR(t *testing.T, s string) netaddr.Address {
	t.Helper()
	addr, err := netaddr.ParseCIDR(s)
	if err != nil {
		t.Fatalf("ParseCIDR(%q): %v", s, err)
	}
	return addr
}

func TestEncodeAdd_RoundTrip(t *testing.T) {
	dest := mustCIDR(t, "203.0.113.0/24")
	msg, seq, err := EncodeAdd(dest, "198.51.100.1", &Iface{Name: "em1", Index: 5}, 0)
	if err != nil {
		t.Fatalf("EncodeAdd error: %v", err)
	}
	if seq == 0 {
		t.Errorf("EncodeAdd returned zero sequence number")
	}

	h := parseMsgHeader(msg)
	if h.Len != len(msg) {
		t.Errorf("rtm_msglen = %d, want exact encoded size %d", h.Len, len(msg))
	}
	if h.Version != rtmVersion {
		t.Errorf("rtm_version = %d, want %d", h.Version, rtmVersion)
	}
	if h.Type != rtmAdd {
		t.Errorf("rtm_type = %d, want RTM_ADD", h.Type)
	}
	if h.Seq != seq {
		t.Errorf("rtm_seq = %d, want %d", h.Seq, seq)
	}
	if h.Addrs != rtaDst|rtaGateway|rtaNetmask|rtaIfp {
		t.Errorf("rtm_addrs = %#x, want dst|gateway|netmask|ifp", h.Addrs)
	}

	records, err := DecodeRIB(msg)
	if err != nil {
		t.Fatalf("decoding encoder output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("decoded %d records, want 1", len(records))
	}

	r := records[0]
	if r.Destination != "203.0.113.0" {
		t.Errorf("Destination = %q, want %q", r.Destination, "203.0.113.0")
	}
	if r.Netmask != "255.255.255.0" {
		t.Errorf("Netmask = %q, want /24 equivalent", r.Netmask)
	}
	if r.PrefixLen() != 24 {
		t.Errorf("PrefixLen() = %d, want 24", r.PrefixLen())
	}
	if r.Gateway != "198.51.100.1" {
		t.Errorf("Gateway = %q, want %q", r.Gateway, "198.51.100.1")
	}
	if r.Interface != "em1" {
		t.Errorf("Interface = %q, want %q", r.Interface, "em1")
	}
	if r.Flags&(FlagUp|FlagGateway|FlagStatic) != FlagUp|FlagGateway|FlagStatic {
		t.Errorf("Flags = %v, want up|gateway|static set", r.Flags)
	}
}

func TestEncodeAdd_HostRoute(t *testing.T) {
	dest := mustCIDR(t, "192.0.2.7")
	msg, _, err := EncodeAdd(dest, "192.0.2.1", nil, 0)
	if err != nil {
		t.Fatalf("EncodeAdd error: %v", err)
	}

	h := parseMsgHeader(msg)
	if h.Addrs&rtaNetmask != 0 {
		t.Errorf("host route must not carry a netmask sockaddr")
	}
	if h.Flags&FlagHost == 0 {
		t.Errorf("host route must set RTF_HOST")
	}

	records, err := DecodeRIB(msg)
	if err != nil {
		t.Fatalf("decoding encoder output: %v", err)
	}
	if !records[0].IsHost() || records[0].IsNetwork() {
		t.Errorf("decoded host route: IsHost=%v IsNetwork=%v", records[0].IsHost(), records[0].IsNetwork())
	}
	if records[0].Netmask != "" {
		t.Errorf("host route Netmask = %q, want empty", records[0].Netmask)
	}
}

func TestEncodeAdd_IPv6RoundTrip(t *testing.T) {
	dest := mustCIDR(t, "2001:db8:1::/48")
	msg, _, err := EncodeAdd(dest, "2001:db8::1", &Iface{Name: "em0", Index: 2}, 0)
	if err != nil {
		t.Fatalf("EncodeAdd error: %v", err)
	}

	records, err := DecodeRIB(msg)
	if err != nil {
		t.Fatalf("decoding encoder output: %v", err)
	}
	r := records[0]
	if r.Family != netaddr.FamilyIPv6 {
		t.Errorf("Family = %v, want IPv6", r.Family)
	}
	if r.Destination != "2001:db8:1::" {
		t.Errorf("Destination = %q, want %q", r.Destination, "2001:db8:1::")
	}
	if r.Gateway != "2001:db8::1" {
		t.Errorf("Gateway = %q, want %q", r.Gateway, "2001:db8::1")
	}
	if r.PrefixLen() != 48 {
		t.Errorf("PrefixLen() = %d, want 48", r.PrefixLen())
	}
}

func TestEncodeAdd_InvalidGateway(t *testing.T) {
	dest := mustCIDR(t, "10.0.0.0/8")

	if _, _, err := EncodeAdd(dest, "not-an-ip", nil, 0); err == nil {
		t.Fatal("EncodeAdd expected error for unparseable gateway")
	} else if !stderrors.Is(err, errors.New(errors.ErrCodeInvalidAddress, "")) {
		t.Errorf("error code = %v, want INVALID_ADDRESS", err)
	}

	// Family mismatch: IPv6 gateway for an IPv4 destination.
	if _, _, err := EncodeAdd(dest, "2001:db8::1", nil, 0); err == nil {
		t.Fatal("EncodeAdd expected error for family-mismatched gateway")
	} else if !stderrors.Is(err, errors.New(errors.ErrCodeInvalidAddress, "")) {
		t.Errorf("error code = %v, want INVALID_ADDRESS", err)
	}
}

func TestEncodeDelete(t *testing.T) {
	dest := mustCIDR(t, "203.0.113.0/24")
	msg, seq, err := EncodeDelete(dest, "198.51.100.1")
	if err != nil {
		t.Fatalf("EncodeDelete error: %v", err)
	}

	h := parseMsgHeader(msg)
	if h.Type != rtmDelete {
		t.Errorf("rtm_type = %d, want RTM_DELETE", h.Type)
	}
	if h.Seq != seq {
		t.Errorf("rtm_seq = %d, want %d", h.Seq, seq)
	}
	if h.Addrs != rtaDst|rtaGateway|rtaNetmask {
		t.Errorf("rtm_addrs = %#x, want dst|gateway|netmask", h.Addrs)
	}

	records, err := DecodeRIB(msg)
	if err != nil {
		t.Fatalf("decoding encoder output: %v", err)
	}
	if records[0].Destination != "203.0.113.0" {
		t.Errorf("Destination = %q, want %q", records[0].Destination, "203.0.113.0")
	}
}

func TestEncodeDelete_WithoutGateway(t *testing.T) {
	dest := mustCIDR(t, "10.9.0.0/16")
	msg, _, err := EncodeDelete(dest, "")
	if err != nil {
		t.Fatalf("EncodeDelete error: %v", err)
	}

	h := parseMsgHeader(msg)
	if h.Addrs&rtaGateway != 0 {
		t.Errorf("delete without gateway must not carry a gateway sockaddr")
	}
}

func TestEncode_SequenceNumbersAdvance(t *testing.T) {
	dest := mustCIDR(t, "10.0.0.0/8")
	_, seq1, err := EncodeDelete(dest, "")
	if err != nil {
		t.Fatal(err)
	}
	_, seq2, err := EncodeDelete(dest, "")
	if err != nil {
		t.Fatal(err)
	}
	if seq2 == seq1 {
		t.Errorf("consecutive messages share sequence number %d", seq1)
	}
}

func TestEncode_SockaddrsAligned(t *testing.T) {
	dest := mustCIDR(t, "10.0.0.0/8")
	msg, _, err := EncodeAdd(dest, "10.0.0.1", &Iface{Name: "em0", Index: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Every sockaddr must start on a word boundary relative to the
	// start of the tail.
	tail := msg[msgHeaderLen:]
	cursor := 0
	for cursor < len(tail) {
		if cursor%wordSize != 0 {
			t.Fatalf("sockaddr at unaligned tail offset %d", cursor)
		}
		saLen := int(tail[cursor])
		if saLen == 0 {
			t.Fatalf("encoder emitted zero-length sockaddr at offset %d", cursor)
		}
		cursor += saAlign(saLen)
	}
	if cursor != len(tail) {
		t.Errorf("sockaddr walk consumed %d of %d tail bytes", cursor, len(tail))
	}
}
