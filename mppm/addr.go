package mppm

import "net"

// An Endpoint is one address this path manager can pair into a
// subflow, either local (owned by this host) or remote (learned via
// ADD_ADDR, spec.md §4.7).
type Endpoint struct {
	ID      uint8
	IP      net.IP
	Port    uint16
	IsV6    bool
	Backup  bool // local-only: advertise MP_JOIN's backup bit for subflows from this address.
	PerPort bool // local-only: marks the endpoint for per-ports mode; PathManager.Candidates does not read it.
}

// AddrSet is a PM's local or remote address table, keyed by address
// ID the way ovsnl/vport.go keys vports by a dense VportID.
type AddrSet struct {
	byID map[uint8]Endpoint
	next uint8
}

// NewAddrSet constructs an empty address set.
func NewAddrSet() *AddrSet {
	return &AddrSet{byID: make(map[uint8]Endpoint), next: 1}
}

// Add inserts ep, assigning it the next free ID if ep.ID is zero, and
// returns the ID it was stored under.
func (s *AddrSet) Add(ep Endpoint) uint8 {
	if ep.ID == 0 {
		ep.ID = s.next
		s.next++
	} else if ep.ID >= s.next {
		s.next = ep.ID + 1
	}
	s.byID[ep.ID] = ep
	return ep.ID
}

// Learn applies ADD_ADDR semantics for a remote address: a new ID is
// appended, a known ID with a changed address is updated in place (the
// NAT case), and an exact repeat is a no-op (spec.md §4.7).
func (s *AddrSet) Learn(ep Endpoint) {
	existing, ok := s.byID[ep.ID]
	if ok && existing.IP.Equal(ep.IP) && existing.Port == ep.Port && existing.IsV6 == ep.IsV6 {
		return
	}
	if ep.ID >= s.next {
		s.next = ep.ID + 1
	}
	s.byID[ep.ID] = ep
}

// Remove deletes the endpoint with the given ID, if present.
func (s *AddrSet) Remove(id uint8) {
	delete(s.byID, id)
}

// All returns every endpoint currently in the set, in ascending ID
// order.
func (s *AddrSet) All() []Endpoint {
	out := make([]Endpoint, 0, len(s.byID))
	for _, ep := range s.byID {
		out = append(out, ep)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID < out[j-1].ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
