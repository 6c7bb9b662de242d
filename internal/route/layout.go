package route

import (
	"encoding/binary"
	"strconv"
)

// Wire layout of FreeBSD routing socket messages (net/route.h). Both the
// dump decoder and the mutation encoder read their offsets from this file;
// there is deliberately no second copy of any of these numbers.
//
// A message is one rt_msghdr followed by up to rtaxMax sockaddrs, selected
// by the rtm_addrs presence bitmask in ascending slot order. Each sockaddr
// occupies its sa_len rounded up to the platform word size (the kernel's
// SA_SIZE macro); a zero sa_len still occupies one word.

// wordSize is the platform pointer-word size, which FreeBSD uses both as
// the sockaddr alignment unit and as sizeof(u_long) in rt_msghdr.
const wordSize = strconv.IntSize / 8

const (
	rtmVersion = 5

	rtmAdd    = 0x1
	rtmDelete = 0x2
	rtmChange = 0x3
	rtmGet    = 0x4
)

// rt_msghdr field offsets. The fixed 32-byte prefix is followed by
// rtm_inits (one u_long) and rt_metrics (14 u_longs).
const (
	offMsglen  = 0 // uint16
	offVersion = 2 // uint8
	offType    = 3 // uint8
	offIndex   = 4 // uint16
	offFlags   = 8 // int32
	offAddrs   = 12
	offPid     = 16
	offSeq     = 20
	offErrno   = 24
	offFmask   = 28
	offInits   = 32

	offMetrics = offInits + wordSize
	offMTU     = offMetrics + 1*wordSize  // rmx_mtu
	offExpire  = offMetrics + 3*wordSize  // rmx_expire
	offWeight  = offMetrics + 10*wordSize // rmx_weight

	msgHeaderLen = offMetrics + 14*wordSize
)

// Address slot indices (RTAX_*) and their presence bits (RTA_*).
const (
	rtaxDst     = 0
	rtaxGateway = 1
	rtaxNetmask = 2
	rtaxGenmask = 3
	rtaxIfp     = 4
	rtaxIfa     = 5
	rtaxAuthor  = 6
	rtaxBrd     = 7
	rtaxMax     = 8
)

const (
	rtaDst     = 1 << rtaxDst
	rtaGateway = 1 << rtaxGateway
	rtaNetmask = 1 << rtaxNetmask
	rtaIfp     = 1 << rtaxIfp
)

// Address families as they appear in sa_family (FreeBSD values).
const (
	afUnspec = 0
	afInet   = 2
	afLink   = 18
	afInet6  = 28
)

// Generic sockaddr layout.
const (
	saOffLen    = 0
	saOffFamily = 1

	sockaddrInSize   = 16 // sockaddr_in, 4-byte address at offset 4
	sockaddrIn6Size  = 28 // sockaddr_in6, 16-byte address at offset 8
	sockaddrDlSize   = 54 // sockaddr_dl with full sdl_data
	saInAddrOff      = 4
	saIn6AddrOff     = 8
	saIn6ScopeOff    = 24
	saDlIndexOff     = 2
	saDlNameLenOff   = 5
	saDlAddrLenOff   = 6
	saDlDataOff      = 8
)

// nativeEndian is the byte order routing messages use on the wire: the
// kernel writes them from in-memory structs, so they are host-endian.
var nativeEndian = binary.NativeEndian

// saAlign rounds a sockaddr length up to the platform word boundary.
// Zero-length sockaddrs still consume one alignment unit.
func saAlign(n int) int {
	if n == 0 {
		return wordSize
	}
	return (n + wordSize - 1) &^ (wordSize - 1)
}

// msgHeader is the decoded form of rt_msghdr.
type msgHeader struct {
	Len     int
	Version int
	Type    int
	Index   int
	Flags   RouteFlags
	Addrs   int
	PID     int
	Seq     int
	Errno   int
	MTU     uint64
	Expire  int64
}

// parseMsgHeader decodes one rt_msghdr from the start of b. The caller
// guarantees len(b) >= msgHeaderLen.
func parseMsgHeader(b []byte) msgHeader {
	return msgHeader{
		Len:     int(nativeEndian.Uint16(b[offMsglen:])),
		Version: int(b[offVersion]),
		Type:    int(b[offType]),
		Index:   int(nativeEndian.Uint16(b[offIndex:])),
		Flags:   RouteFlags(int32(nativeEndian.Uint32(b[offFlags:]))),
		Addrs:   int(int32(nativeEndian.Uint32(b[offAddrs:]))),
		PID:     int(int32(nativeEndian.Uint32(b[offPid:]))),
		Seq:     int(int32(nativeEndian.Uint32(b[offSeq:]))),
		Errno:   int(int32(nativeEndian.Uint32(b[offErrno:]))),
		MTU:     readWord(b, offMTU),
		Expire:  int64(readWord(b, offExpire)),
	}
}

// putMsgHeader encodes h into b. The caller guarantees len(b) >= msgHeaderLen
// and that b is zeroed.
func putMsgHeader(b []byte, h msgHeader) {
	nativeEndian.PutUint16(b[offMsglen:], uint16(h.Len))
	b[offVersion] = byte(h.Version)
	b[offType] = byte(h.Type)
	nativeEndian.PutUint16(b[offIndex:], uint16(h.Index))
	nativeEndian.PutUint32(b[offFlags:], uint32(h.Flags))
	nativeEndian.PutUint32(b[offAddrs:], uint32(h.Addrs))
	nativeEndian.PutUint32(b[offPid:], uint32(h.PID))
	nativeEndian.PutUint32(b[offSeq:], uint32(h.Seq))
	nativeEndian.PutUint32(b[offErrno:], uint32(h.Errno))
}

// readWord reads one u_long at off.
func readWord(b []byte, off int) uint64 {
	if wordSize == 8 {
		return nativeEndian.Uint64(b[off:])
	}
	return uint64(nativeEndian.Uint32(b[off:]))
}
