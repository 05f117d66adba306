package mptcp

import (
	"testing"

	"github.com/mptcp-tools/go-mptcp/mpopt"
)

func newTestMCB() *MCB {
	return NewMCB(0x1234, 1, 2, false)
}

func TestDeriveMappingOrdinary(t *testing.T) {
	m := newTestMCB()
	m.RcvNxt = 1000

	meta := &mpopt.SegmentMeta{
		MappingPresent: true,
		DataSeq:        1000,
		SubSeq:         500,
		DataLen:        100,
	}

	mapping, ok := m.Master.deriveMapping(meta)
	if !ok {
		t.Fatal("expected mapping to be derived")
	}
	if mapping.DataSeq != 1000 || mapping.SubSeq != 500 || mapping.DataLen != 100 {
		t.Errorf("mapping = %+v, want DataSeq=1000 SubSeq=500 DataLen=100", mapping)
	}
}

func TestDeriveMappingInfinite(t *testing.T) {
	m := newTestMCB()
	m.RcvNxt = 5000

	meta := &mpopt.SegmentMeta{
		MappingPresent: true,
		DataSeq:        5000,
		SubSeq:         200,
		DataLen:        0xFFFF,
	}

	mapping, ok := m.Master.deriveMapping(meta)
	if !ok {
		t.Fatal("expected infinite mapping to be derived")
	}
	if !m.Flags.InfiniteMappingActive {
		t.Fatal("expected InfiniteMappingActive to be set")
	}
	if mapping.DataSeq != 5000 {
		t.Errorf("mapping.DataSeq = %d, want 5000", mapping.DataSeq)
	}

	// Once infinite, subsequent derivations should track subflow
	// sequence progress directly, without needing a mapping present.
	m.Master.RcvNxt = 300
	second, ok := m.Master.deriveMapping(&mpopt.SegmentMeta{})
	if !ok {
		t.Fatal("expected infinite-mode derivation to succeed without a DSS mapping")
	}
	if second.DataSeq != 5100 {
		t.Errorf("second.DataSeq = %d, want 5100 (5000 + (300-200))", second.DataSeq)
	}
}

func TestMappingCovers(t *testing.T) {
	m := Mapping{DataSeq: 100, SubSeq: 10, DataLen: 50}

	if !m.Covers(10, 60, false) {
		t.Error("expected [10,60) to be covered")
	}
	if m.Covers(10, 61, false) {
		t.Error("expected [10,61) to exceed the window")
	}
	if !m.Covers(10, 61, true) {
		t.Error("expected [10,61) to be covered when fin extends the window by one")
	}
}

func TestReconcileReDerivesOnMiss(t *testing.T) {
	m := newTestMCB()
	sf := m.Master
	sf.mcb = m
	sf.Mapping = Mapping{DataSeq: 0, SubSeq: 0, DataLen: 10}

	meta := &mpopt.SegmentMeta{
		MappingPresent: true,
		DataSeq:        1000,
		SubSeq:         50,
		DataLen:        20,
	}

	if err := sf.reconcile(50, 70, false, meta); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if sf.Mapping.DataSeq != 1000 {
		t.Errorf("Mapping.DataSeq = %d, want 1000 after re-derivation", sf.Mapping.DataSeq)
	}
}

func TestReconcileFailsWithoutCoverage(t *testing.T) {
	m := newTestMCB()
	sf := m.Master
	sf.mcb = m

	err := sf.reconcile(50, 70, false, &mpopt.SegmentMeta{})
	if err == nil {
		t.Fatal("expected an error when no mapping covers the range and none can be derived")
	}
}

func TestWidenDataSeqNearWraparound(t *testing.T) {
	ref := uint64(1) << 32
	low := uint32(10)
	got := widenDataSeq(low, ref)
	want := ref + 10
	if got != want {
		t.Errorf("widenDataSeq(%d, %d) = %d, want %d", low, ref, got, want)
	}
}
