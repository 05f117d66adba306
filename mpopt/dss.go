package mpopt

import (
	"encoding/binary"

	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// OutDSS is the structured descriptor for an outbound DSS.
type OutDSS struct {
	DataAckPresent bool
	DataAck        uint32

	MappingPresent bool
	DataSeq        uint32
	SubSeq         uint32
	DataLen        uint16
	DFIN           bool

	Checksum        uint16
	ChecksumPresent bool
}

// parseDSS decodes a DSS suboption body (spec.md §4.1). The A bit
// yields a 32-bit data-ack; the M bit yields data_seq/sub_seq/data_len
// and end_data_seq is left for the caller (mptcp.deriveMapping) to
// derive, since that computation also needs the segment's own seq/len.
// The F bit marks a data-FIN and records fin_dsn.
func parseDSS(body []byte, optOffset int, meta *SegmentMeta, acc *ReceiveOptions) {
	if len(body) < mptcph.LenDSSBase {
		return
	}

	flags := body[3]
	aSet := flags&mptcph.DSSFlagA != 0
	mSet := flags&mptcph.DSSFlagM != 0
	fSet := flags&mptcph.DSSFlagF != 0

	off := 4
	var dataAck uint32
	if aSet {
		if len(body) < off+4 {
			return
		}
		dataAck = binary.BigEndian.Uint32(body[off : off+4])
		off += 4
	}

	remaining := len(body) - off
	checksummed := acc.ChecksumRequired
	if mSet {
		want := mptcph.LenDSSSeq
		if checksummed {
			want = mptcph.LenDSSSeqCsum
		}
		if remaining != want {
			// Length didn't match the negotiated mode; try the other
			// mode before giving up, since checksum negotiation state
			// is tracked separately from what's on the wire.
			if remaining == mptcph.LenDSSSeq {
				checksummed = false
			} else if remaining == mptcph.LenDSSSeqCsum {
				checksummed = true
			} else {
				return
			}
		}
	}

	// Every length check has passed; only now are the records written.
	if aSet {
		meta.DataAckPresent = true
		meta.DataAck = dataAck
	}
	if mSet {
		meta.MappingPresent = true
		meta.DataSeq = binary.BigEndian.Uint32(body[off : off+4])
		meta.SubSeq = binary.BigEndian.Uint32(body[off+4 : off+8])
		meta.DataLen = binary.BigEndian.Uint16(body[off+8 : off+10])

		if checksummed {
			meta.ChecksumPresent = true
			meta.Checksum = binary.BigEndian.Uint16(body[off+10 : off+12])
			meta.DSSPayloadOffset = optOffset + off
		}
	}

	if fSet {
		meta.DFIN = true
		if mSet {
			meta.FinDSN = uint32(uint64(meta.DataSeq) + uint64(meta.DataLen))
		}
		acc.DFINSeen = true
	}
}

func encodeDSS(o *OutDSS) []byte {
	flags := byte(0)
	if o.DataAckPresent {
		flags |= mptcph.DSSFlagA
	}
	if o.MappingPresent {
		flags |= mptcph.DSSFlagM
	}
	if o.DFIN {
		flags |= mptcph.DSSFlagF
	}

	length := mptcph.LenDSSBase
	if o.DataAckPresent {
		length += 4
	}
	if o.MappingPresent {
		if o.ChecksumPresent {
			length += mptcph.LenDSSSeqCsum
		} else {
			length += mptcph.LenDSSSeq
		}
	}

	b := make([]byte, length)
	b[0], b[1], b[2], b[3] = mptcph.Kind, byte(length), mptcph.SubDSS<<4, flags

	off := 4
	if o.DataAckPresent {
		binary.BigEndian.PutUint32(b[off:off+4], o.DataAck)
		off += 4
	}
	if o.MappingPresent {
		binary.BigEndian.PutUint32(b[off:off+4], o.DataSeq)
		binary.BigEndian.PutUint32(b[off+4:off+8], o.SubSeq)
		binary.BigEndian.PutUint16(b[off+8:off+10], o.DataLen)
		off += 10
		if o.ChecksumPresent {
			binary.BigEndian.PutUint16(b[off:off+2], o.Checksum)
		}
	}

	return b
}
