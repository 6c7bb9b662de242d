package route

import (
	"fmt"
	"net"
	"os"
	"sync/atomic"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// Iface names a network interface together with its kernel index.
type Iface struct {
	Name  string
	Index int
}

var seqCounter int32

// nextSeq returns a process-unique sequence number for outbound messages,
// used to correlate the kernel's reply.
func nextSeq() int {
	return int(atomic.AddInt32(&seqCounter, 1))
}

// EncodeAdd builds an RTM_ADD message installing a route to dest via
// gateway. For network destinations a netmask sockaddr is included; host
// destinations get RTF_HOST instead. When iface is non-nil its link-level
// sockaddr is included so the route is bound to that interface. extraFlags
// is OR-ed into the standard RTF_UP|RTF_GATEWAY|RTF_STATIC set.
//
// The returned sequence number identifies the kernel's acknowledgement.
func EncodeAdd(dest netaddr.Address, gateway string, iface *Iface, extraFlags RouteFlags) ([]byte, int, error) {
	gw, err := parseGateway(dest.Family(), gateway)
	if err != nil {
		return nil, 0, err
	}

	flags := FlagUp | FlagGateway | FlagStatic | extraFlags
	addrs := rtaDst | rtaGateway
	if dest.IsHost() {
		flags |= FlagHost
	} else {
		addrs |= rtaNetmask
	}
	if iface != nil {
		addrs |= rtaIfp
	}

	msg, seq := encodeMessage(rtmAdd, dest, gw, iface, flags, addrs)
	return msg, seq, nil
}

// EncodeDelete builds an RTM_DELETE message removing the route to dest.
// The gateway is optional; when present it disambiguates between multiple
// routes to the same destination.
func EncodeDelete(dest netaddr.Address, gateway string) ([]byte, int, error) {
	var gw net.IP
	if gateway != "" {
		var err error
		if gw, err = parseGateway(dest.Family(), gateway); err != nil {
			return nil, 0, err
		}
	}

	var flags RouteFlags
	addrs := rtaDst
	if dest.IsHost() {
		flags |= FlagHost
	} else {
		addrs |= rtaNetmask
	}
	if gw != nil {
		flags |= FlagGateway
		addrs |= rtaGateway
	}

	msg, seq := encodeMessage(rtmDelete, dest, gw, nil, flags, addrs)
	return msg, seq, nil
}

// parseGateway parses gateway as an IP of the destination's family.
func parseGateway(family netaddr.Family, gateway string) (net.IP, error) {
	gw, err := netaddr.ParseCIDR(gateway)
	if err != nil {
		return nil, errors.NewInvalidAddressError(
			fmt.Sprintf("gateway %q is not a valid IP address", gateway), err)
	}
	if gw.Family() != family {
		return nil, errors.NewInvalidAddressError(fmt.Sprintf(
			"gateway %q (%s) does not match destination family %s",
			gateway, gw.Family(), family), nil)
	}
	ip := net.ParseIP(gw.IP())
	if family == netaddr.FamilyIPv4 {
		return ip.To4(), nil
	}
	return ip.To16(), nil
}

// encodeMessage assembles one routing message: the fixed header followed
// by the selected sockaddrs in ascending slot order, each padded to the
// word boundary. rtm_msglen is set to the exact encoded size.
func encodeMessage(msgType int, dest netaddr.Address, gw net.IP, iface *Iface, flags RouteFlags, addrs int) ([]byte, int) {
	seq := nextSeq()

	buf := make([]byte, msgHeaderLen, msgHeaderLen+4*saAlign(sockaddrDlSize))

	for slot := 0; slot < rtaxMax; slot++ {
		if addrs&(1<<slot) == 0 {
			continue
		}
		switch slot {
		case rtaxDst:
			buf = appendInet(buf, dest.Family(), net.ParseIP(dest.Network()))
		case rtaxGateway:
			buf = appendInet(buf, dest.Family(), gw)
		case rtaxNetmask:
			buf = appendInet(buf, dest.Family(), net.IP(dest.Mask()))
		case rtaxIfp:
			buf = appendLink(buf, iface)
		}
	}

	index := 0
	if iface != nil {
		index = iface.Index
	}
	putMsgHeader(buf, msgHeader{
		Len:     len(buf),
		Version: rtmVersion,
		Type:    msgType,
		Index:   index,
		Flags:   flags,
		Addrs:   addrs,
		PID:     os.Getpid(),
		Seq:     seq,
	})

	return buf, seq
}

// appendInet appends a full-size, word-aligned sockaddr_in or sockaddr_in6.
func appendInet(buf []byte, family netaddr.Family, ip net.IP) []byte {
	if family == netaddr.FamilyIPv6 {
		sa := make([]byte, saAlign(sockaddrIn6Size))
		sa[saOffLen] = sockaddrIn6Size
		sa[saOffFamily] = afInet6
		copy(sa[saIn6AddrOff:saIn6AddrOff+16], ip.To16())
		return append(buf, sa...)
	}
	sa := make([]byte, saAlign(sockaddrInSize))
	sa[saOffLen] = sockaddrInSize
	sa[saOffFamily] = afInet
	copy(sa[saInAddrOff:saInAddrOff+4], ip.To4())
	return append(buf, sa...)
}

// appendLink appends a sockaddr_dl naming the outgoing interface.
func appendLink(buf []byte, iface *Iface) []byte {
	nameLen := len(iface.Name)
	saLen := saDlDataOff + nameLen
	if saLen < sockaddrDlSize {
		saLen = sockaddrDlSize
	}
	sa := make([]byte, saAlign(saLen))
	sa[saOffLen] = byte(saLen)
	sa[saOffFamily] = afLink
	nativeEndian.PutUint16(sa[saDlIndexOff:], uint16(iface.Index))
	sa[saDlNameLenOff] = byte(nameLen)
	copy(sa[saDlDataOff:], iface.Name)
	return append(buf, sa...)
}
