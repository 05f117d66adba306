// Package mptcph mirrors the on-wire layout of the MPTCP TCP suboptions
// and of the generic-netlink PM control-plane messages used by the
// mpopt and mpnl packages.
//
// Values are transcribed by hand from the draft-era kernel headers this
// module's wire format is pinned to; unlike ovsh there is no generator
// to regenerate this file from, so it is kept in sync manually.
package mptcph
