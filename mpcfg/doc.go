// Package mpcfg is the sysctl-style runtime configuration surface
// spec.md §6 describes: mptcp_enabled, mptcp_mss, mptcp_ndiffports,
// mptcp_checksum, and mptcp_scheduler, each parsed from and rendered
// back to the same string form the kernel's /proc/sys/net/mptcp/
// knobs use.
//
// Construction follows ovsdb's OptionFunc pattern; the string-keyed
// parse dispatch follows ovs/matchparser.go's parseMatch.
package mpcfg
