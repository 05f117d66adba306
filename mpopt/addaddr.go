package mpopt

import (
	"encoding/binary"

	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// OutAddAddr is the structured descriptor for an outbound ADD_ADDR.
type OutAddAddr struct {
	RemoteAddr
}

func parseAddAddr(body []byte, meta *SegmentMeta, acc *ReceiveOptions) {
	if len(body) < 4 {
		return
	}

	ipver := body[2] & 0x0f
	addrID := body[3]

	var (
		isV6    bool
		addrLen int
	)
	switch ipver {
	case 4:
		isV6 = false
		addrLen = 4
	case 6:
		isV6 = true
		addrLen = 16
	default:
		return
	}

	const headerLen = 4
	withoutPort := headerLen + addrLen
	withPort := withoutPort + mptcph.LenAddAddrPort
	if len(body) != withoutPort && len(body) != withPort {
		return
	}

	var ra RemoteAddr
	ra.ID = addrID
	ra.IsV6 = isV6
	if isV6 {
		copy(ra.IP[:], body[headerLen:headerLen+16])
	} else {
		copy(ra.IP[:4], body[headerLen:headerLen+4])
	}
	if len(body) == withPort {
		ra.Port = binary.BigEndian.Uint16(body[withoutPort:withPort])
	}

	acc.addRemoteAddr(ra)
}

// addRemoteAddr implements spec.md §4.7's remote-address learning: new
// (id, address) pairs are appended, an existing id with a disagreeing
// address is updated in place (NAT case), exact matches are no-ops.
func (acc *ReceiveOptions) addRemoteAddr(ra RemoteAddr) {
	for i, existing := range acc.RemoteAddrs {
		if existing.ID != ra.ID {
			continue
		}
		if existing.IP == ra.IP && existing.Port == ra.Port && existing.IsV6 == ra.IsV6 {
			return
		}
		acc.RemoteAddrs[i] = ra
		return
	}
	acc.RemoteAddrs = append(acc.RemoteAddrs, ra)
}

func encodeAddAddr(o *OutAddAddr) []byte {
	ipver := byte(4)
	addrLen := 4
	if o.IsV6 {
		ipver = 6
		addrLen = 16
	}

	length := 4 + addrLen
	if o.Port != 0 {
		length += mptcph.LenAddAddrPort
	}

	b := make([]byte, length)
	b[0], b[1] = mptcph.Kind, byte(length)
	b[2] = mptcph.SubAddAddr<<4 | ipver
	b[3] = o.ID
	if o.IsV6 {
		copy(b[4:20], o.IP[:])
	} else {
		copy(b[4:8], o.IP[:4])
	}
	if o.Port != 0 {
		binary.BigEndian.PutUint16(b[4+addrLen:length], o.Port)
	}
	return b
}
