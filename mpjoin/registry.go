package mpjoin

import (
	"crypto/sha1"
	"encoding/binary"
	"sync"
)

// TokenOf derives the 32-bit connection token from a 64-bit MPTCP key:
// the most significant 32 bits of SHA1(key), per mptcp_key_sha1 in
// original_source/include/net/mptcp.h and spec.md §3's "token"
// invariant.
func TokenOf(key uint64) uint32 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	sum := sha1.Sum(buf[:])
	return binary.BigEndian.Uint32(sum[:4])
}

// A Tuple identifies one in-progress join attempt by its SYN's source
// address and port, since a request-sock exists before any token can
// be confirmed from the ACK.
type Tuple struct {
	SrcIP   string
	SrcPort uint16
}

// A Request is one outstanding MP_JOIN handshake, tracked from the
// SYN that carried the token through to the ACK that carries the
// full HMAC (spec.md §4.8).
type Request struct {
	Token     uint32
	AddrID    uint8
	Nonce     uint32 // this side's nonce, generated when the SYN/SYN-ACK was sent.
	PeerNonce uint32 // the peer's nonce, learned from the other leg.
	LocalKey  uint64
	RemoteKey uint64
	PathIndex uint8
	Backup    bool
}

// Registry is the join engine's request-sock table, indexed by tuple
// only (to find the Request a later ACK continues). It keeps no index
// by token; the token-to-MCB lookup is mptcp.TokenTable.
type Registry struct {
	mu      sync.Mutex
	byTuple map[Tuple]*Request
}

// NewRegistry constructs an empty join registry.
func NewRegistry() *Registry {
	return &Registry{byTuple: make(map[Tuple]*Request)}
}

// Begin records a new in-progress join attempt keyed by the SYN's
// source tuple.
func (r *Registry) Begin(t Tuple, req *Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTuple[t] = req
}

// Lookup returns the in-progress Request for t, if any.
func (r *Registry) Lookup(t Tuple) (*Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byTuple[t]
	return req, ok
}

// Complete removes t from the registry once its handshake has
// finished, successfully or not.
func (r *Registry) Complete(t Tuple) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTuple, t)
}

// Len reports the number of in-progress join attempts, mainly for
// tests and introspection.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byTuple)
}
