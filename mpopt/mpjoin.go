package mpopt

import (
	"encoding/binary"

	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// SynJoin is the body of an MP_JOIN carried on a SYN (spec.md §4.1,
// §6): a remote token plus address id and per-join nonce.
type SynJoin struct {
	Backup bool
	AddrID uint8
	Token  uint32
	Nonce  uint32
}

// SynAckJoin is the body of an MP_JOIN carried on a SYN-ACK: this end's
// address id plus a truncated HMAC and this end's nonce.
type SynAckJoin struct {
	Backup        bool
	AddrID        uint8
	TruncatedHMAC [mptcph.JoinHMAC32 * 2]byte
	Nonce         uint32
}

// AckJoin is the body of an MP_JOIN carried on the final ACK: the full
// HMAC proving possession of both keys and nonces.
type AckJoin struct {
	HMAC [mptcph.HMACSize]byte
}

// OutJoin is the structured descriptor for an outbound MP_JOIN.
type OutJoin struct {
	Stage Stage
	SynJoin
	SynAckJoin
	AckJoin
}

func parseMPJoin(body []byte, meta *SegmentMeta, acc *ReceiveOptions) {
	if len(body) < 3 {
		return
	}

	switch len(body) {
	case mptcph.LenJoinSyn:
		addrByte := body[3]
		sj := SynJoin{
			Backup: addrByte&0x80 != 0,
			AddrID: addrByte &^ 0x80,
			Token:  binary.BigEndian.Uint32(body[4:8]),
			Nonce:  binary.BigEndian.Uint32(body[8:12]),
		}
		meta.Join = &JoinMeta{Stage: StageSyn, SynJoin: sj}
		acc.ReceivedToken = sj.Token
	case mptcph.LenJoinSynAck:
		addrByte := body[3]
		var hmac [8]byte
		copy(hmac[:], body[4:12])
		saj := SynAckJoin{
			Backup:        addrByte&0x80 != 0,
			AddrID:        addrByte &^ 0x80,
			TruncatedHMAC: hmac,
			Nonce:         binary.BigEndian.Uint32(body[12:16]),
		}
		meta.Join = &JoinMeta{Stage: StageSynAck, SynAckJoin: saj}
	case mptcph.LenJoinAck:
		var aj AckJoin
		copy(aj.HMAC[:], body[4:24])
		meta.Join = &JoinMeta{Stage: StageAck, AckJoin: aj}
	default:
		return
	}
}

func encodeMPJoin(o *OutJoin) []byte {
	switch o.Stage {
	case StageSyn:
		b := make([]byte, mptcph.LenJoinSyn)
		b[0], b[1], b[2] = mptcph.Kind, mptcph.LenJoinSyn, mptcph.SubJoin<<4
		b[3] = o.AddrID
		if o.Backup {
			b[3] |= 0x80
		}
		binary.BigEndian.PutUint32(b[4:8], o.Token)
		binary.BigEndian.PutUint32(b[8:12], o.Nonce)
		return b
	case StageSynAck:
		b := make([]byte, mptcph.LenJoinSynAck)
		b[0], b[1], b[2] = mptcph.Kind, mptcph.LenJoinSynAck, mptcph.SubJoin<<4
		b[3] = o.AddrID
		if o.Backup {
			b[3] |= 0x80
		}
		copy(b[4:12], o.TruncatedHMAC[:])
		binary.BigEndian.PutUint32(b[12:16], o.Nonce)
		return b
	case StageAck:
		b := make([]byte, mptcph.LenJoinAck)
		b[0], b[1], b[2] = mptcph.Kind, mptcph.LenJoinAck, mptcph.SubJoin<<4
		copy(b[4:24], o.HMAC[:])
		return b
	default:
		return nil
	}
}
