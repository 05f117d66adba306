package mptcp

import (
	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
	"github.com/mptcp-tools/go-mptcp/mpopt"
)

// deriveMapping turns a freshly-parsed DSS option into the Mapping the
// segment should carry, applying the infinite-mapping fallback once
// it has been triggered (spec.md §4.2, §9 Open Question "infinite
// mapping cutoff").
//
// deriveMapping does not read the data-FIN bit: the parser records it
// once in SegmentMeta.DFIN, the meta layer counts the data-FIN byte
// through Segment.DFIN (see Segment.EndDataSeq), and the option bytes
// are never re-scanned.
func (sf *Subflow) deriveMapping(meta *mpopt.SegmentMeta) (Mapping, bool) {
	m := sf.mcb

	if m.Flags.InfiniteMappingActive {
		// Once infinite, the subflow sequence number doubles as the
		// DSN offset directly from the cutoff point on; no window
		// validation applies.
		off := sf.RcvNxt - m.InfiniteCutoffSubSeq
		return Mapping{
			DataSeq: m.InfiniteCutoffSeq + uint64(off),
			DataLen: 0,
			SubSeq:  sf.RcvNxt,
		}, true
	}

	if !meta.MappingPresent {
		return Mapping{}, false
	}

	if meta.DataLen == mptcph.InfiniteMappingLen {
		m.Flags.InfiniteMappingActive = true
		m.InfiniteCutoffSeq = widenDataSeq(meta.DataSeq, m.RcvNxt)
		m.InfiniteCutoffSubSeq = meta.SubSeq
		return Mapping{
			DataSeq: m.InfiniteCutoffSeq,
			DataLen: 0,
			SubSeq:  meta.SubSeq,
		}, true
	}

	return Mapping{
		DataSeq: widenDataSeq(meta.DataSeq, m.RcvNxt),
		DataLen: uint32(meta.DataLen),
		SubSeq:  meta.SubSeq,
	}, true
}

// widenDataSeq reconstructs the full 64-bit DSN nearest to ref whose
// low 32 bits equal low, the same way TCP extends 32-bit timestamps
// against a known-recent reference point (spec.md GLOSSARY "DSN
// widening").
func widenDataSeq(low uint32, ref uint64) uint64 {
	base := ref &^ 0xFFFFFFFF
	candidate := base | uint64(low)

	const half = uint64(1) << 31
	if candidate > ref+half {
		candidate -= uint64(1) << 32
	} else if candidate+half < ref {
		candidate += uint64(1) << 32
	}
	return candidate
}

// reconcile validates an inbound (seq, endSeq) subflow range against
// the subflow's current mapping, re-deriving a new one from meta when
// the existing mapping does not cover the range (spec.md §4.2).
func (sf *Subflow) reconcile(seq, endSeq uint32, fin bool, meta *mpopt.SegmentMeta) error {
	if sf.Mapping.Covers(seq, endSeq, fin) {
		return nil
	}

	mapping, ok := sf.deriveMapping(meta)
	if !ok {
		return &MappingError{Seq: seq, EndSeq: endSeq}
	}
	sf.Mapping = mapping

	if !sf.Mapping.Covers(seq, endSeq, fin) && !sf.mcb.Flags.InfiniteMappingActive {
		return &MappingError{Seq: seq, EndSeq: endSeq}
	}
	return nil
}

// toDataSeq converts a subflow-sequence offset within [seq, endSeq) to
// its absolute DSN, using the subflow's current mapping.
func (sf *Subflow) toDataSeq(seq uint32) uint64 {
	off := seq - sf.Mapping.SubSeq
	return sf.Mapping.DataSeq + uint64(off)
}
