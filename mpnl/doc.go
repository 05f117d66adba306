// Package mpnl is a generic-netlink client for the "mptcp_pm" family:
// the userspace path-manager channel the kernel uses to announce join
// requests, address additions, and subflow lifecycle events (spec.md
// §4.7, §4.8).
//
// Its shape follows ovsnl's Client/DatapathService/VportService split:
// one connection, one service struct per netlink family command group,
// attribute-switch parse loops guarded by length checks before any
// fixed-width decode.
package mpnl
