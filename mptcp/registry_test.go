package mptcp

import "testing"

func TestAttachAssignsNextPathIndex(t *testing.T) {
	m := newTestMCB()
	sf := &Subflow{}

	if err := m.Attach(sf); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if sf.PathIndex != 2 {
		t.Errorf("PathIndex = %d, want 2", sf.PathIndex)
	}
	if m.NextPathIndex != 3 {
		t.Errorf("NextPathIndex = %d, want 3", m.NextPathIndex)
	}
	if !sf.Attached {
		t.Error("expected sf.Attached to be true")
	}
}

func TestAttachRejectsDuplicatePathIndex(t *testing.T) {
	m := newTestMCB()
	sf := &Subflow{PathIndex: 1} // collides with the master

	if err := m.Attach(sf); err != ErrDuplicatePathIndex {
		t.Errorf("err = %v, want ErrDuplicatePathIndex", err)
	}
}

func TestDetachReturnsPendingSegments(t *testing.T) {
	m := newTestMCB()
	sf := &Subflow{}
	if err := m.Attach(sf); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	sf.WriteQueue = []*Segment{{DataSeq: 0, Payload: []byte("x")}}

	pending := m.Detach(sf)
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, want 1", len(pending))
	}
	if sf.Attached {
		t.Error("expected sf.Attached to be false after Detach")
	}
	for _, s := range m.Subflows {
		if s == sf {
			t.Error("expected sf to be removed from m.Subflows")
		}
	}
}

func TestAggregateBuffersDistributesEvenly(t *testing.T) {
	m := newTestMCB()
	m.Master.RcvBuf = 100
	m.Master.SndBuf = 200

	sf := &Subflow{RcvBuf: 300, SndBuf: 400}
	if err := m.Attach(sf); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	wantRcv := (100 + 300) / 2
	wantSnd := (200 + 400) / 2
	if m.Master.RcvSSThresh != wantRcv {
		t.Errorf("Master.RcvSSThresh = %d, want %d", m.Master.RcvSSThresh, wantRcv)
	}
	if sf.WindowClamp != wantSnd {
		t.Errorf("sf.WindowClamp = %d, want %d", sf.WindowClamp, wantSnd)
	}
}

func TestAttachedOrdersByPathIndex(t *testing.T) {
	m := newTestMCB()
	third := &Subflow{PathIndex: 5}
	second := &Subflow{PathIndex: 3}
	m.Subflows = append(m.Subflows, third, second)

	ordered := m.Attached()
	if len(ordered) != 3 {
		t.Fatalf("len(ordered) = %d, want 3", len(ordered))
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].PathIndex < ordered[i-1].PathIndex {
			t.Errorf("Attached() not sorted by path index: %+v", ordered)
		}
	}
}
