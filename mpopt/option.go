// Package mpopt parses and emits the MPTCP TCP suboptions described in
// spec.md §4.1 and §6: MP_CAPABLE, MP_JOIN, DSS, ADD_ADDR and MP_FAIL.
//
// ParseOption follows the same contract as the attribute-switch parse
// loops in ovsnl (parseFlows, parseDatapaths, parseVport): it never
// allocates beyond what the caller-supplied records need, verifies
// length before any fixed-width decode, and leaves the two records
// untouched on any recognized-but-malformed input rather than
// returning an error.
package mpopt

import (
	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// A SegmentMeta is the mutable per-segment metadata record populated by
// ParseOption while walking one TCP segment's options (spec.md §4.1).
type SegmentMeta struct {
	// DSS-derived fields.
	DataAckPresent bool
	DataAck        uint32

	MappingPresent bool
	DataSeq        uint32
	SubSeq         uint32
	DataLen        uint16

	DFIN   bool
	FinDSN uint32

	ChecksumPresent bool
	Checksum        uint16
	// DSSPayloadOffset is the byte offset of the DSS payload from the
	// TCP transport header, recorded only when the MCB has negotiated
	// checksums (spec.md §4.1).
	DSSPayloadOffset int

	// MP_JOIN SYN/SYN-ACK/ACK fields, present only on the segment that
	// carried them.
	Join *JoinMeta

	// MP_CAPABLE fields, present only on the segment that carried it.
	Capable *CapableMeta

	// MP_FAIL, present only on the segment that carried it.
	Fail *FailMeta
}

// A JoinMeta captures one segment's MP_JOIN suboption.
type JoinMeta struct {
	Stage Stage
	SynJoin
	SynAckJoin
	AckJoin
}

// A CapableMeta captures one segment's MP_CAPABLE suboption.
type CapableMeta struct {
	Stage Stage
	MPCapable
}

// A FailMeta captures one segment's MP_FAIL suboption.
type FailMeta struct {
	DataSeq uint32
}

// A Stage distinguishes which handshake leg a suboption was carried on,
// since MP_CAPABLE and MP_JOIN have a different wire length per leg
// (spec.md §6).
type Stage int

// Stage values.
const (
	StageSyn Stage = iota
	StageSynAck
	StageAck
)

// ReceiveOptions is the per-MCB accumulator fed by ParseOption across
// every segment received on any of the MCB's subflows (spec.md §3's
// "receive-side options").
type ReceiveOptions struct {
	MPCapable        bool
	LocalKey         uint64
	RemoteKey        uint64
	ChecksumRequired bool

	ReceivedToken uint32

	RemoteAddrs []RemoteAddr

	DFINSeen bool
	FinDSN   uint32
}

// A RemoteAddr is one address learned via ADD_ADDR (spec.md §4.7).
type RemoteAddr struct {
	ID   uint8
	IP   [16]byte // IPv4 addresses are stored in the low 4 bytes.
	IsV6 bool
	Port uint16
}

// ParseOption parses a single TCP option, starting at its kind byte,
// into meta and acc; an option whose kind is not the MPTCP kind is
// ignored. optOffset is the
// byte offset of this option from the start of the TCP transport
// header, needed only to record the DSS payload offset for later CRC
// verification (spec.md §4.1). Unrecognized kinds are ignored.
// Malformed lengths are ignored, never fatal (spec.md §4.1, §7).
func ParseOption(data []byte, optOffset int, meta *SegmentMeta, acc *ReceiveOptions) {
	if len(data) < 3 {
		return
	}
	if data[0] != mptcph.Kind {
		return
	}

	length := int(data[1])
	if length > len(data) || length < 3 {
		return
	}
	body := data[:length]
	sub := body[2] >> 4

	switch int(sub) {
	case mptcph.SubCapable:
		parseMPCapable(body, meta, acc)
	case mptcph.SubJoin:
		parseMPJoin(body, meta, acc)
	case mptcph.SubDSS:
		parseDSS(body, optOffset, meta, acc)
	case mptcph.SubAddAddr:
		parseAddAddr(body, meta, acc)
	case mptcph.SubFail:
		parseMPFail(body, meta, acc)
	default:
		// Unknown subtype: silently ignored per spec.md §4.1.
	}
}

// OutboundOptions is the structured descriptor EmitOptions encodes from
// (spec.md §4.1's "Emits options on outbound segments from a
// structured option descriptor").
type OutboundOptions struct {
	Capable *OutCapable
	Join    *OutJoin
	DSS     *OutDSS
	AddAddr *OutAddAddr
	Fail    *OutFail
}

// EmitOptions encodes every suboption present in desc, in a fixed
// order, and returns the concatenated bytes ready to append to a TCP
// options block.
func EmitOptions(desc *OutboundOptions) []byte {
	var out []byte
	if desc.Capable != nil {
		out = append(out, encodeMPCapable(desc.Capable)...)
	}
	if desc.Join != nil {
		out = append(out, encodeMPJoin(desc.Join)...)
	}
	if desc.DSS != nil {
		out = append(out, encodeDSS(desc.DSS)...)
	}
	if desc.AddAddr != nil {
		out = append(out, encodeAddAddr(desc.AddAddr)...)
	}
	if desc.Fail != nil {
		out = append(out, encodeMPFail(desc.Fail)...)
	}
	return out
}
