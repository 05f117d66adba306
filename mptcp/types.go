package mptcp

import (
	"sync"
	"time"
)

// SubflowState mirrors the handful of ordinary-TCP states the
// scheduler and lifecycle code need to read; the state machine itself
// belongs to the out-of-scope single-flow TCP layer (spec.md §1).
type SubflowState int

// SubflowState values.
const (
	StateClosed SubflowState = iota
	StateSynSent
	StateSynRecv
	StateEstablished
	StateCloseWait
	StateFinWait1
)

// CongState is the minimal congestion-control state the scheduler
// consults (spec.md §4.4); the congestion-control algorithm itself is
// out of scope (spec.md §1 Non-goals).
type CongState int

// CongState values.
const (
	CongOpen CongState = iota
	CongLoss
)

// A Mapping is the (subseq, dsn, len) triple asserting that len bytes
// starting at subflow offset subseq correspond to DSN offset dsn
// (spec.md GLOSSARY, §4.2).
type Mapping struct {
	DataSeq uint64
	DataLen uint32
	SubSeq  uint32
}

// Covers reports whether the subflow sequence interval [seq, endSeq)
// lies inside the mapping's window, with endSeq extended by one when
// fin is true (spec.md §3 "Mapping coverage" invariant).
func (m Mapping) Covers(seq, endSeq uint32, fin bool) bool {
	upper := uint64(m.SubSeq) + uint64(m.DataLen)
	if fin {
		upper++
	}
	return uint64(seq) >= uint64(m.SubSeq) && uint64(endSeq) <= upper
}

// A Segment is one meta-level unit of data: a DSN-addressed byte range
// that may be in flight on one or more subflows simultaneously (after
// reinjection).
type Segment struct {
	DataSeq  uint64
	Payload  []byte
	DFIN     bool
	PathMask uint32
	Reinject bool

	// Subflow-sequence bookkeeping, set by skb_entail (spec.md §4.4)
	// when the segment is appended to a subflow's write queue.
	Seq, EndSeq, SubSeq uint32

	beingRetransmitted bool
}

// EndDataSeq returns the exclusive upper bound of the segment's DSN
// range, including the synthetic DFIN byte when present (spec.md §3
// "DFIN idempotence").
func (s *Segment) EndDataSeq() uint64 {
	end := s.DataSeq + uint64(len(s.Payload))
	if s.DFIN {
		end++
	}
	return end
}

// CarriesPath reports whether pathIndex already appears in the
// segment's path_mask (spec.md §4.4 reinjection skip rule).
func (s *Segment) CarriesPath(pathIndex uint8) bool {
	return s.PathMask&(1<<pathIndex) != 0
}

// A Subflow is one TCP connection participating in an MCB (spec.md
// §3).
type Subflow struct {
	// Ordinary-TCP sequence space, inherited conceptually from the
	// out-of-scope single-flow TCP layer.
	SndNxt, SndUna, RcvNxt uint32
	Cwnd, InFlight         uint32
	SRTT                   time.Duration

	State SubflowState
	Cong  CongState

	// MPTCP-specific attributes (spec.md §3).
	PathIndex  uint8
	IsMaster   bool
	PF         bool
	Attached   bool
	MPC        bool
	IncludeMPC bool
	Backup     bool

	Mapping Mapping

	// Per-subflow aggregate buffer contributions (spec.md §4.5).
	WindowClamp int
	RcvSSThresh int
	RcvBuf      int
	SndBuf      int

	WriteQueue []*Segment

	mcb *MCB
}

// Eligible reports whether the subflow is a scheduling candidate
// (spec.md §4.4 step 1), given the MCB's current noneligible mask.
func (s *Subflow) Eligible(noneligible uint32) bool {
	if s.State != StateEstablished && s.State != StateCloseWait {
		return false
	}
	if s.PF {
		return false
	}
	if s.Cong == CongLoss {
		return false
	}
	if s.InFlight >= s.Cwnd {
		return false
	}
	if noneligible&(1<<s.PathIndex) != 0 {
		return false
	}
	return true
}

// MCBState is the MCB's own visible TCP-like state (spec.md §4.6),
// distinct from any subflow's state.
type MCBState int

// MCBState values.
const (
	MCBClosed MCBState = iota
	MCBSynSent
	MCBEstablished
	MCBCloseWait
	MCBFinWait1
)

// Flags is the per-MCB flags word (spec.md §3).
type Flags struct {
	ServerSide            bool
	FinEnqueued           bool
	SendInfiniteMapping   bool
	InfiniteMappingActive bool
}

// A PathEntry is one (local-address, remote-address) pair in the
// MCB's path array, along with its assigned path index (spec.md §3,
// §4.7).
type PathEntry struct {
	PathIndex    uint8
	LocalAddrID  uint8
	RemoteAddrID uint8
	LocalPort    uint16
	RemotePort   uint16
}

// MCB is the meta-connection control block: the single owner of a
// multipath connection (spec.md §3).
type MCB struct {
	mu sync.Mutex

	Token     uint32
	LocalKey  uint64
	RemoteKey uint64

	Subflows []*Subflow
	Master   *Subflow

	// Meta sequence space, all in the DSN space (spec.md §3).
	SndNxt uint64
	SndUna uint64
	RcvNxt uint64

	// CopiedSeq is the application read cursor; it trails RcvNxt by
	// whatever has not yet been Read (spec.md §4.3).
	CopiedSeq uint64

	RecvQueue     []*Segment
	OfoQueue      []*Segment
	ReinjectQueue []*Segment
	OfoCap        int // backpressure cap (spec.md §4.3); 0 means unbounded.

	PathArray     []PathEntry
	NextPathIndex uint8

	Noneligible uint32 // temporary per-path-index scheduler disqualification mask.

	Flags Flags
	State MCBState

	InfiniteCutoffSeq    uint64
	InfiniteCutoffSubSeq uint32

	// backlog holds segments that arrived while the master lock was
	// held by another task (spec.md §5); drained on unlock.
	backlog []backlogEntry
}

type backlogEntry struct {
	sf  *Subflow
	seg *Segment
}

// NewMCB constructs an MCB around its master subflow (spec.md §3
// "Master identity" invariant: path index 1, not a slave).
func NewMCB(token uint32, localKey, remoteKey uint64, serverSide bool) *MCB {
	master := &Subflow{
		PathIndex: 1,
		IsMaster:  true,
		Attached:  true,
		State:     StateSynSent,
	}

	m := &MCB{
		Token:         token,
		LocalKey:      localKey,
		RemoteKey:     remoteKey,
		Master:        master,
		Subflows:      []*Subflow{master},
		NextPathIndex: 2,
		State:         MCBSynSent,
		Flags:         Flags{ServerSide: serverSide},
	}
	master.mcb = m
	return m
}

// lock acquires the MCB-wide master lock (spec.md §5).
func (m *MCB) lock() { m.mu.Lock() }

// unlock releases the master lock and drains anything that queued up
// on the backlog while it was held (spec.md §5).
func (m *MCB) unlock() {
	backlog := m.backlog
	m.backlog = nil
	m.mu.Unlock()

	for _, e := range backlog {
		m.Enqueue(e.sf, e.seg)
	}
}
