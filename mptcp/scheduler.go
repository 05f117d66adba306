package mptcp

// NextSubflow implements the send-side scheduler's candidate
// selection: among attached, eligible subflows pick the one with the
// lowest smoothed RTT, with backup subflows
// considered only once no non-backup candidate is eligible (spec.md
// §4.4, supplemental backup-bit tie-break per SPEC_FULL.md).
func (m *MCB) NextSubflow() (*Subflow, error) {
	m.lock()
	defer m.unlock()
	return m.nextSubflowLocked()
}

func (m *MCB) nextSubflowLocked() (*Subflow, error) {
	var best *Subflow
	var bestBackup *Subflow

	for _, sf := range m.Subflows {
		if !sf.Attached || !sf.Eligible(m.Noneligible) {
			continue
		}
		if sf.Backup {
			if bestBackup == nil || sf.SRTT < bestBackup.SRTT {
				bestBackup = sf
			}
			continue
		}
		if best == nil || sf.SRTT < best.SRTT {
			best = sf
		}
	}

	if best != nil {
		return best, nil
	}
	if bestBackup != nil {
		return bestBackup, nil
	}
	return nil, ErrNoEligibleSubflow
}

// skbEntail appends seg to sf's write queue, stamping its
// subflow-sequence bookkeeping fields from sf.SndNxt (spec.md §4.4
// "skb_entail").
func (m *MCB) skbEntail(sf *Subflow, seg *Segment) {
	seg.Seq = sf.SndNxt
	seg.SubSeq = sf.SndNxt
	seg.EndSeq = sf.SndNxt + uint32(len(seg.Payload))
	if seg.DFIN {
		seg.EndSeq++
	}
	sf.SndNxt = seg.EndSeq
	sf.WriteQueue = append(sf.WriteQueue, seg)
	seg.PathMask |= 1 << sf.PathIndex
}

// Send queues payload as a single meta segment for transmission,
// entailing it onto the subflow the scheduler selects (spec.md
// §4.4). Any segments still waiting on MCB.ReinjectQueue get first
// crack at a newly-eligible subflow, per §4.4's next-segment
// priority: reinjected data before fresh data.
func (m *MCB) Send(payload []byte, fin bool) error {
	m.lock()
	defer m.unlock()

	m.drainReinjectLocked()

	seg := &Segment{
		DataSeq: m.SndNxt,
		Payload: payload,
		DFIN:    fin,
	}

	sf, err := m.nextSubflowLocked()
	if err != nil {
		return err
	}

	m.skbEntail(sf, seg)
	m.SndNxt = seg.EndDataSeq()
	if fin {
		m.Flags.FinEnqueued = true
	}
	return nil
}

// Reinject moves unacked segments from a failed or closing subflow
// onto MCB.ReinjectQueue and puts the subflow into the pf state, then
// attempts to re-entail as many of them as possible onto another
// eligible subflow (spec.md §4.4 "reinjection"; "the subflow whose
// data was reinjected enters the pf state").
func (m *MCB) Reinject(from *Subflow) error {
	m.lock()
	defer m.unlock()

	pending := from.WriteQueue
	from.WriteQueue = nil
	from.PF = true

	for _, seg := range pending {
		seg.Reinject = true
		m.ReinjectQueue = append(m.ReinjectQueue, seg)
	}
	return m.drainReinjectLocked()
}

// drainReinjectLocked re-entails as many queued segments as possible
// onto an eligible subflow that doesn't already carry them, in FIFO
// order. A segment is left on MCB.ReinjectQueue only once every
// attached, eligible subflow's path index already appears in its
// path_mask (spec.md
// §4.4 reinjection skip rule) — never merely because the first
// subflow the scheduler would otherwise pick already carries it.
func (m *MCB) drainReinjectLocked() error {
	remaining := m.ReinjectQueue[:0]
	for _, seg := range m.ReinjectQueue {
		dst := m.subflowWithoutPathLocked(seg)
		if dst == nil {
			remaining = append(remaining, seg)
			continue
		}
		m.skbEntail(dst, seg)
	}
	m.ReinjectQueue = remaining

	if len(m.ReinjectQueue) > 0 {
		return ErrNoEligibleSubflow
	}
	return nil
}

// subflowWithoutPathLocked returns the scheduler's preferred attached,
// eligible subflow whose path index is absent from seg's path_mask,
// or nil once every attached, eligible subflow already carries it
// (spec.md §4.4).
func (m *MCB) subflowWithoutPathLocked(seg *Segment) *Subflow {
	var best *Subflow
	var bestBackup *Subflow

	for _, sf := range m.Subflows {
		if !sf.Attached || !sf.Eligible(m.Noneligible) || seg.CarriesPath(sf.PathIndex) {
			continue
		}
		if sf.Backup {
			if bestBackup == nil || sf.SRTT < bestBackup.SRTT {
				bestBackup = sf
			}
			continue
		}
		if best == nil || sf.SRTT < best.SRTT {
			best = sf
		}
	}

	if best != nil {
		return best
	}
	return bestBackup
}

// MarkLoss transitions sf into the PF ("potentially failed") state,
// removing it from scheduling consideration until cleared (spec.md
// §4.4).
func (sf *Subflow) MarkLoss() {
	sf.PF = true
	sf.Cong = CongLoss
}

// ClearLoss clears a subflow's PF state once it has demonstrated
// forward progress again.
func (sf *Subflow) ClearLoss() {
	sf.PF = false
	sf.Cong = CongOpen
}
