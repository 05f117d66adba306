package mpopt

import (
	"encoding/binary"

	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// OutFail is the structured descriptor for an outbound MP_FAIL.
type OutFail struct {
	DataSeq uint32
}

// parseMPFail decodes MP_FAIL (spec.md §6): the source truncates the
// failing DSN to 32 bits and this module preserves that.
func parseMPFail(body []byte, meta *SegmentMeta, acc *ReceiveOptions) {
	if len(body) != mptcph.LenFail {
		return
	}
	meta.Fail = &FailMeta{DataSeq: binary.BigEndian.Uint32(body[4:8])}
}

func encodeMPFail(o *OutFail) []byte {
	b := make([]byte, mptcph.LenFail)
	b[0], b[1], b[2], b[3] = mptcph.Kind, mptcph.LenFail, mptcph.SubFail<<4, 0
	binary.BigEndian.PutUint32(b[4:8], o.DataSeq)
	return b
}
