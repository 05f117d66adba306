// Package mptrace renders human-readable trace lines for the
// DSS engine, scheduler, and path manager: one line per mapping
// derived, segment scheduled, or interface/address event, in the
// same terse "field=value" style ovs/proto_trace.go's regexp-driven
// parser expects on the other end of an ofproto/trace pipeline.
package mptrace
