package route

import (
	"fmt"
	"net"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// DecodeRIB walks a kernel routing-table dump buffer and decodes every
// routing message in it. The buffer is only read during this call; all
// strings in the returned records are copies.
//
// Messages with an unexpected rtm_version are skipped over by their
// declared length so a newer kernel format is never misinterpreted. A
// declared length that would read past the end of the buffer fails the
// whole decode: a partial routing table is indistinguishable from a short
// one and must not be returned as if it were complete.
func DecodeRIB(buf []byte) ([]Record, error) {
	var records []Record

	for off := 0; off+msgHeaderLen <= len(buf); {
		h := parseMsgHeader(buf[off:])

		if h.Len < msgHeaderLen {
			return nil, errors.NewTruncatedMessageError(fmt.Sprintf(
				"message at offset %d declares length %d, shorter than the %d-byte header",
				off, h.Len, msgHeaderLen))
		}
		if off+h.Len > len(buf) {
			return nil, errors.NewTruncatedMessageError(fmt.Sprintf(
				"message at offset %d declares length %d but only %d bytes remain",
				off, h.Len, len(buf)-off))
		}

		if h.Version != rtmVersion || !isRouteMsgType(h.Type) {
			off += h.Len
			continue
		}

		rec, err := decodeMessage(h, buf[off+msgHeaderLen:off+h.Len])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)

		// rtm_msglen is authoritative; it may cover padding the
		// per-sockaddr walk does not account for.
		off += h.Len
	}

	return records, nil
}

func isRouteMsgType(t int) bool {
	switch t {
	case rtmAdd, rtmDelete, rtmChange, rtmGet:
		return true
	}
	return false
}

// decodeMessage decodes the sockaddr tail of one routing message into a
// Record. tail is the message body between the fixed header and rtm_msglen.
func decodeMessage(h msgHeader, tail []byte) (Record, error) {
	rec := Record{
		IfIndex: h.Index,
		Flags:   h.Flags,
		MTU:     h.MTU,
		Expire:  h.Expire,
	}

	cursor := 0
	for slot := 0; slot < rtaxMax; slot++ {
		if h.Addrs&(1<<slot) == 0 {
			continue
		}
		if cursor >= len(tail) {
			// The bitmask promises more sockaddrs than the message
			// carries. Trailing omission shows up in real dumps;
			// treat the remaining slots as absent.
			break
		}

		saLen := int(tail[cursor])
		if cursor+saLen > len(tail) {
			return Record{}, errors.NewTruncatedMessageError(fmt.Sprintf(
				"sockaddr in slot %d declares length %d but only %d bytes remain in the message",
				slot, saLen, len(tail)-cursor))
		}

		sa := tail[cursor : cursor+saLen]
		if err := decodeSockaddr(&rec, slot, sa); err != nil {
			return Record{}, err
		}

		cursor += saAlign(saLen)
	}

	return rec, nil
}

// decodeSockaddr decodes a single sockaddr into the record slot it was
// found in. A zero-length sockaddr is a placeholder and leaves the slot at
// its default.
func decodeSockaddr(rec *Record, slot int, sa []byte) error {
	if len(sa) == 0 {
		return nil
	}

	if slot == rtaxNetmask {
		// Netmask sockaddrs are special: the kernel truncates them
		// after the last non-zero byte and does not reliably tag a
		// family, so they are interpreted in the destination family.
		rec.Netmask = decodeNetmask(rec.Family, sa)
		return nil
	}

	family := afUnspec
	if len(sa) > saOffFamily {
		family = int(sa[saOffFamily])
	}

	var value string
	switch family {
	case afInet:
		value = decodeInet4(sa)
	case afInet6:
		value = decodeInet6(sa)
	case afLink:
		return decodeLink(rec, slot, sa)
	default:
		// Unknown family: leave the slot at its default rather than
		// guessing at the payload layout.
		return nil
	}

	switch slot {
	case rtaxDst:
		rec.Destination = value
		if family == afInet6 {
			rec.Family = netaddr.FamilyIPv6
		} else {
			rec.Family = netaddr.FamilyIPv4
		}
	case rtaxGateway:
		rec.Gateway = value
	}
	// Genmask, ifa, author and broadcast payloads are decoded and
	// discarded; records do not carry them.
	return nil
}

func decodeInet4(sa []byte) string {
	var ip [4]byte
	if len(sa) > saInAddrOff {
		copy(ip[:], sa[saInAddrOff:])
	}
	return net.IP(ip[:]).String()
}

func decodeInet6(sa []byte) string {
	var ip [16]byte
	if len(sa) > saIn6AddrOff {
		copy(ip[:], sa[saIn6AddrOff:])
	}
	// The kernel embeds the scope id of link-local addresses in bytes
	// 2-3 of the address; clear it so the textual form is the plain
	// fe80:: address.
	if ip[0] == 0xfe && ip[1]&0xc0 == 0x80 {
		ip[2], ip[3] = 0, 0
	}
	return net.IP(ip[:]).String()
}

// decodeLink decodes a sockaddr_dl. In the interface-pointer slot the name
// bytes identify the interface; in the gateway slot the address bytes are
// a link-layer (MAC) next hop.
func decodeLink(rec *Record, slot int, sa []byte) error {
	if len(sa) <= saDlAddrLenOff {
		return nil
	}
	nameLen := int(sa[saDlNameLenOff])
	addrLen := int(sa[saDlAddrLenOff])
	if saDlDataOff+nameLen+addrLen > len(sa) {
		return errors.NewTruncatedMessageError(fmt.Sprintf(
			"link sockaddr in slot %d declares name %d + address %d bytes beyond its %d-byte length",
			slot, nameLen, addrLen, len(sa)))
	}

	switch slot {
	case rtaxIfp:
		rec.Interface = string(sa[saDlDataOff : saDlDataOff+nameLen])
		if idx := int(nativeEndian.Uint16(sa[saDlIndexOff:])); idx != 0 {
			rec.IfIndex = idx
		}
	case rtaxGateway:
		if addrLen > 0 {
			mac := sa[saDlDataOff+nameLen : saDlDataOff+nameLen+addrLen]
			rec.Gateway = net.HardwareAddr(mac).String()
		}
	}
	return nil
}

// decodeNetmask interprets a (possibly truncated) netmask sockaddr in the
// given family, zero-filling the bytes the kernel dropped.
func decodeNetmask(family netaddr.Family, sa []byte) string {
	if family == netaddr.FamilyIPv6 {
		var mask [16]byte
		if len(sa) > saIn6AddrOff {
			copy(mask[:], sa[saIn6AddrOff:])
		}
		return net.IP(mask[:]).String()
	}
	var mask [4]byte
	if len(sa) > saInAddrOff {
		copy(mask[:], sa[saInAddrOff:])
	}
	return net.IP(mask[:]).String()
}
