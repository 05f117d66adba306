package mptcp

// Attach registers a newly-joined subflow with the MCB, assigning it
// the next free path index and recomputing every subflow's buffer
// sizing with aggregateBuffersLocked (spec.md §4.5, §3 "path index"
// invariant).
func (m *MCB) Attach(sf *Subflow) error {
	m.lock()
	defer m.unlock()

	if sf.PathIndex != 0 {
		for _, existing := range m.Subflows {
			if existing.Attached && existing.PathIndex == sf.PathIndex {
				return ErrDuplicatePathIndex
			}
		}
	} else {
		if m.NextPathIndex == 0 {
			return ErrPathIndexExhausted
		}
		sf.PathIndex = m.NextPathIndex
		m.NextPathIndex++
	}

	sf.Attached = true
	sf.mcb = m
	m.Subflows = append(m.Subflows, sf)
	m.aggregateBuffersLocked()
	return nil
}

// Detach removes sf from the MCB's active subflow set. Any data still
// queued on sf is handed to the caller so it can be reinjected
// elsewhere (spec.md §4.4, §4.5).
func (m *MCB) Detach(sf *Subflow) []*Segment {
	m.lock()
	defer m.unlock()

	for i, existing := range m.Subflows {
		if existing == sf {
			m.Subflows = append(m.Subflows[:i], m.Subflows[i+1:]...)
			break
		}
	}
	sf.Attached = false
	pending := sf.WriteQueue
	sf.WriteQueue = nil

	m.aggregateBuffersLocked()
	return pending
}

// aggregateBuffersLocked takes the mean RcvBuf and the mean SndBuf
// over the subflows in MCB.Subflows, raises each subflow's RcvSSThresh
// to at least the mean RcvBuf, and sets each subflow's WindowClamp to
// the mean SndBuf (spec.md §4.5 "buffer aggregation").
//
// The MCB itself keeps no summed window-clamp, rcv_ssthresh, rcvbuf or
// sndbuf totals; only the per-subflow fields above change.
func (m *MCB) aggregateBuffersLocked() {
	n := len(m.Subflows)
	if n == 0 {
		return
	}

	var totalRcv, totalSnd int
	for _, sf := range m.Subflows {
		totalRcv += sf.RcvBuf
		totalSnd += sf.SndBuf
	}

	perRcv := totalRcv / n
	perSnd := totalSnd / n
	for _, sf := range m.Subflows {
		if sf.RcvSSThresh < perRcv {
			sf.RcvSSThresh = perRcv
		}
		sf.WindowClamp = perSnd
	}
}

// Attached returns a copy of MCB.Subflows in path index order, lowest
// first. Entries are not filtered on their Attached flag.
func (m *MCB) Attached() []*Subflow {
	m.lock()
	defer m.unlock()

	out := make([]*Subflow, len(m.Subflows))
	copy(out, m.Subflows)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].PathIndex < out[j-1].PathIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
