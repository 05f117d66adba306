// Package mptcp implements the meta-connection control block (MCB)
// that binds several TCP subflows into one reliable byte stream: the
// data-sequence mapping engine, the meta reassembly and retransmission
// queues, the send-side scheduler and reinjection path, the subflow
// registry, and the MCB lifecycle state machine (spec.md §3–§4.6).
//
// The ordinary single-flow TCP state machine, IP routing, and the
// socket-layer bind/connect/sendmsg dispatch are out of scope
// (spec.md §1) and are represented here only by the minimal
// SubflowState a scheduler needs to read.
package mptcp
