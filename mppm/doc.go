// Package mppm is the path manager: it tracks the local and remote
// address sets for an MCB, computes the path-array product (spec.md
// §4.7: every local address against every remote address of the same
// family; per-ports mode is not applied), and decides which (local,
// remote) pairs become subflow-initiation requests.
//
// Local interface/address enumeration uses the standard library's
// net.Interfaces; golang.org/x/sys/unix, the teacher's transitive
// low-level syscall dependency (pulled in by mdlayher/netlink),
// supplies only the IFF_* constants for flag rendering. VportSpec's dense
// id-keyed registry shape in ovsnl/vport.go generalizes here to the
// path array itself.
package mppm
