package mptcp

import "sync"

// TokenTable is the process-wide MCB lookup keyed by the token each
// peer derives from its key during MP_CAPABLE (spec.md §4.6, §3
// "token" invariant). It is grounded on the same coarse-locked
// registry shape ovsnl's datapath index uses for ifindex lookups.
type TokenTable struct {
	mu sync.RWMutex
	m  map[uint32]*MCB
}

// NewTokenTable constructs an empty token table.
func NewTokenTable() *TokenTable {
	return &TokenTable{m: make(map[uint32]*MCB)}
}

// Insert registers mcb under its token, returning false if the token
// is already in use (spec.md §3 "token uniqueness").
func (t *TokenTable) Insert(mcb *MCB) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.m[mcb.Token]; exists {
		return false
	}
	t.m[mcb.Token] = mcb
	return true
}

// Lookup returns the MCB registered under token, if any.
func (t *TokenTable) Lookup(token uint32) (*MCB, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mcb, ok := t.m[token]
	return mcb, ok
}

// Remove deregisters the MCB registered under token.
func (t *TokenTable) Remove(token uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, token)
}

// Establish transitions the MCB from SYN_SENT to ESTABLISHED once the
// master subflow's three-way handshake (with MP_CAPABLE) completes
// (spec.md §4.6).
func (m *MCB) Establish() error {
	m.lock()
	defer m.unlock()

	if m.State != MCBSynSent {
		return ErrInvalidState
	}
	m.State = MCBEstablished
	m.Master.State = StateEstablished
	return nil
}

// CloseSend marks the local side's data stream as finished, moving
// the MCB towards FIN_WAIT_1 (spec.md §4.6).
func (m *MCB) CloseSend() error {
	m.lock()
	defer m.unlock()

	switch m.State {
	case MCBEstablished:
		m.State = MCBFinWait1
	case MCBCloseWait:
		m.State = MCBClosed
	default:
		return ErrInvalidState
	}
	return nil
}

// Fallback demotes the MCB to plain single-path TCP over its master
// subflow, discarding every other subflow and disabling further DSS
// mapping (spec.md §4.6 "fallback to TCP", triggered by a checksum
// failure with no infinite mapping possible, or a peer MP_FAIL).
func (m *MCB) Fallback() {
	m.lock()
	defer m.unlock()

	for _, sf := range m.Subflows {
		if !sf.IsMaster {
			sf.Attached = false
		}
	}
	m.Subflows = []*Subflow{m.Master}
	m.Flags.InfiniteMappingActive = true
	m.InfiniteCutoffSeq = m.RcvNxt
	m.InfiniteCutoffSubSeq = m.Master.RcvNxt
}

// Close tears the MCB down: every subflow is detached and the token
// table entry removed (spec.md §4.6).
func (m *MCB) Close(table *TokenTable) {
	m.lock()
	m.State = MCBClosed
	for _, sf := range m.Subflows {
		sf.Attached = false
	}
	m.Subflows = nil
	m.unlock()

	if table != nil {
		table.Remove(m.Token)
	}
}
