package mptcp

import (
	"io"
	"sort"
)

// Enqueue delivers a freshly-received segment into the MCB, placing
// it on the in-order receive queue or the out-of-order queue
// depending on where its DSN falls relative to RcvNxt (spec.md §4.3).
//
// If the master lock is already held by the caller's own goroutine
// (re-entrant delivery from within a locked operation) callers should
// use enqueueLocked directly instead.
func (m *MCB) Enqueue(sf *Subflow, seg *Segment) error {
	m.lock()
	defer m.unlock()
	return m.enqueueLocked(sf, seg)
}

func (m *MCB) enqueueLocked(sf *Subflow, seg *Segment) error {
	if !sf.Attached {
		return ErrSubflowNotAttached
	}

	switch {
	case seg.DataSeq < m.RcvNxt:
		end := seg.EndDataSeq()
		if end <= m.RcvNxt {
			// Fully duplicate; ack and drop (spec.md §4.3 "duplicate
			// delivery" edge case).
			return nil
		}

		// Starts before RcvNxt but extends past it: trim the already
		// delivered prefix and deliver the new tail (spec.md §4.3,
		// the cross-subflow reinjection/overlap case).
		overlap := m.RcvNxt - seg.DataSeq
		if overlap > uint64(len(seg.Payload)) {
			seg.Payload = seg.Payload[:0]
		} else {
			seg.Payload = seg.Payload[overlap:]
		}
		seg.DataSeq = m.RcvNxt

		m.RecvQueue = append(m.RecvQueue, seg)
		m.RcvNxt = seg.EndDataSeq()
		m.drainOfo()
		if seg.DFIN {
			m.onFinReceived()
		}
		return nil

	case seg.DataSeq == m.RcvNxt:
		m.RecvQueue = append(m.RecvQueue, seg)
		m.RcvNxt = seg.EndDataSeq()
		m.drainOfo()
		if seg.DFIN {
			m.onFinReceived()
		}
		return nil

	default:
		return m.insertOfo(seg)
	}
}

// insertOfo inserts seg into the out-of-order queue in DSN order,
// coalescing with an existing entry at the same DSN (spec.md §4.3
// "duplicate delivery"), and enforces OfoCap backpressure.
func (m *MCB) insertOfo(seg *Segment) error {
	for _, existing := range m.OfoQueue {
		if existing.DataSeq == seg.DataSeq {
			return nil
		}
	}

	if m.OfoCap > 0 && len(m.OfoQueue) >= m.OfoCap {
		return ErrOfoQueueFull
	}

	m.OfoQueue = append(m.OfoQueue, seg)
	sort.Slice(m.OfoQueue, func(i, j int) bool {
		return m.OfoQueue[i].DataSeq < m.OfoQueue[j].DataSeq
	})
	return nil
}

// drainOfo moves any now-contiguous prefix of the out-of-order queue
// onto the in-order receive queue, advancing RcvNxt (spec.md §4.3).
func (m *MCB) drainOfo() {
	for len(m.OfoQueue) > 0 {
		head := m.OfoQueue[0]
		if head.DataSeq > m.RcvNxt {
			break
		}
		m.OfoQueue = m.OfoQueue[1:]
		if head.DataSeq < m.RcvNxt {
			if head.EndDataSeq() <= m.RcvNxt {
				// Fully overlapped a byte range already delivered.
				continue
			}
			overlap := m.RcvNxt - head.DataSeq
			if overlap > uint64(len(head.Payload)) {
				head.Payload = head.Payload[:0]
			} else {
				head.Payload = head.Payload[overlap:]
			}
			head.DataSeq = m.RcvNxt
		}
		m.RecvQueue = append(m.RecvQueue, head)
		m.RcvNxt = head.EndDataSeq()
		if head.DFIN {
			m.onFinReceived()
		}
	}
}

func (m *MCB) onFinReceived() {
	switch m.State {
	case MCBEstablished:
		m.State = MCBCloseWait
	case MCBFinWait1:
		m.State = MCBClosed
	}
}

// Read copies up to len(p) bytes of in-order data starting at
// CopiedSeq into p, advancing CopiedSeq and trimming or dropping
// fully-consumed segments from RecvQueue (spec.md §4.3). Once the
// DFIN-bearing segment's payload has been fully copied, CopiedSeq is
// advanced one further byte past the synthetic FIN and Read returns
// io.EOF (spec.md §4.3, property S5).
func (m *MCB) Read(p []byte) (int, error) {
	m.lock()
	defer m.unlock()

	n := 0
	for n < len(p) && len(m.RecvQueue) > 0 {
		seg := m.RecvQueue[0]
		if len(seg.Payload) == 0 {
			m.RecvQueue = m.RecvQueue[1:]
			if seg.DFIN {
				m.CopiedSeq++
				return n, io.EOF
			}
			continue
		}

		copied := copy(p[n:], seg.Payload)
		n += copied
		seg.Payload = seg.Payload[copied:]
		seg.DataSeq += uint64(copied)
		m.CopiedSeq += uint64(copied)

		if len(seg.Payload) == 0 {
			m.RecvQueue = m.RecvQueue[1:]
			if seg.DFIN {
				m.CopiedSeq++
				return n, io.EOF
			}
		}
	}
	return n, nil
}

// Pending reports how many in-order bytes are available to Read
// without blocking.
func (m *MCB) Pending() int {
	m.lock()
	defer m.unlock()

	total := 0
	for _, seg := range m.RecvQueue {
		total += len(seg.Payload)
	}
	return total
}
