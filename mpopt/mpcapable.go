package mpopt

import (
	"encoding/binary"

	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// Version is the MP_CAPABLE version nibble. This module implements the
// later MPTCP variant only (spec.md §9 Open Question 1).
const Version = 0

// Flag bits of the MP_CAPABLE flags byte, big-endian bit order per
// spec.md §6 (checksum-negotiation bit is the high bit, matching the
// kernel's "c" field).
const (
	CapableFlagChecksum = 1 << 7
)

// MPCapable is the decoded body of one MP_CAPABLE suboption.
type MPCapable struct {
	ChecksumRequested bool
	SenderKey         uint64
	// ReceiverKey is only present on the ACK leg.
	ReceiverKey uint64
}

// OutCapable is the structured descriptor for an outbound MP_CAPABLE.
type OutCapable struct {
	Stage             Stage
	ChecksumRequested bool
	SenderKey         uint64
	ReceiverKey       uint64
}

func parseMPCapable(body []byte, meta *SegmentMeta, acc *ReceiveOptions) {
	var stage Stage
	switch len(body) {
	case mptcph.LenCapableSyn:
		stage = StageSyn
	case mptcph.LenCapableSynAck:
		stage = StageSynAck
	case mptcph.LenCapableAck:
		stage = StageAck
	default:
		return
	}

	c := MPCapable{
		ChecksumRequested: body[3]&CapableFlagChecksum != 0,
	}
	if stage == StageSynAck || stage == StageAck {
		c.SenderKey = binary.BigEndian.Uint64(body[4:12])
	}
	if stage == StageAck {
		c.ReceiverKey = binary.BigEndian.Uint64(body[12:20])
	}

	meta.Capable = &CapableMeta{Stage: stage, MPCapable: c}

	if c.ChecksumRequested {
		acc.ChecksumRequired = true
	}
	if stage == StageSynAck {
		acc.MPCapable = true
		acc.RemoteKey = c.SenderKey
	}
}

func encodeMPCapable(o *OutCapable) []byte {
	var flags byte
	if o.ChecksumRequested {
		flags |= CapableFlagChecksum
	}

	switch o.Stage {
	case StageSyn:
		return []byte{mptcph.Kind, mptcph.LenCapableSyn, mptcph.SubCapable<<4 | Version, flags}
	case StageSynAck:
		b := make([]byte, mptcph.LenCapableSynAck)
		b[0], b[1], b[2], b[3] = mptcph.Kind, mptcph.LenCapableSynAck, mptcph.SubCapable<<4|Version, flags
		binary.BigEndian.PutUint64(b[4:12], o.SenderKey)
		return b
	case StageAck:
		b := make([]byte, mptcph.LenCapableAck)
		b[0], b[1], b[2], b[3] = mptcph.Kind, mptcph.LenCapableAck, mptcph.SubCapable<<4|Version, flags
		binary.BigEndian.PutUint64(b[4:12], o.SenderKey)
		binary.BigEndian.PutUint64(b[12:20], o.ReceiverKey)
		return b
	default:
		return nil
	}
}
