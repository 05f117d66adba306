// Package mpjoin implements the join engine: the tuple-indexed
// registry of in-progress MP_JOIN handshakes, and the
// truncated-HMAC computation the handshake authenticates against
// (spec.md §4.8).
//
// The registry follows the same shape as ovsnl's datapath/vport
// indices: a coarse mutex guarding a map, looked up by a small
// composite key (source address and port) instead of a single ifindex.
package mpjoin
