package mppm

// A Pair is one candidate (local, remote) subflow the path manager
// has decided to try (spec.md §4.7's path-array product).
type Pair struct {
	Local  Endpoint
	Remote Endpoint
}

// A PathManager owns one MCB's local and remote address sets and
// produces the set of (local, remote) pairs that should become
// subflow-initiation requests.
type PathManager struct {
	Local  *AddrSet
	Remote *AddrSet

	// tried records pairs already attempted, so a re-run of Candidates
	// after a partial join doesn't re-request pairs already in flight
	// or established.
	tried map[pairKey]bool
}

type pairKey struct {
	localID, remoteID uint8
}

// NewPathManager constructs a PathManager with empty address sets.
func NewPathManager() *PathManager {
	return &PathManager{
		Local:  NewAddrSet(),
		Remote: NewAddrSet(),
		tried:  make(map[pairKey]bool),
	}
}

// Candidates returns every (local, remote) pair of the same address
// family not yet tried, at most once per (local ID, remote ID). The
// Endpoint.PerPort flag is not consulted; per-ports mode (spec.md §4.7)
// produces no extra pairs.
func (pm *PathManager) Candidates() []Pair {
	var out []Pair

	locals := pm.Local.All()
	remotes := pm.Remote.All()

	for _, l := range locals {
		for _, r := range remotes {
			if l.IsV6 != r.IsV6 {
				continue
			}
			key := pairKey{l.ID, r.ID}
			if pm.tried[key] {
				continue
			}
			out = append(out, Pair{Local: l, Remote: r})
		}
	}
	return out
}

// MarkTried records that pair has been attempted, so Candidates will
// not propose it again.
func (pm *PathManager) MarkTried(p Pair) {
	if pm.tried == nil {
		pm.tried = make(map[pairKey]bool)
	}
	pm.tried[pairKey{p.Local.ID, p.Remote.ID}] = true
}

// Reset clears the tried set, allowing every current pair to be
// retried — used after a full path-manager re-probe (e.g. an
// interface coming back up).
func (pm *PathManager) Reset() {
	pm.tried = make(map[pairKey]bool)
}
