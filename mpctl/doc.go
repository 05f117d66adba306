// Package mpctl is the ambient debug surface: a JSON-RPC service a
// running endpoint exposes over a Unix socket so an operator can list
// active MCBs and inspect one connection's subflow set and sequence
// state, without the introspection API being part of spec.md's core
// modules. The two RPC methods are list_connections and
// describe_connection; there is no event stream.
//
// Grounded on ovsdb's Client/rpc/result shape: an OptionFunc-
// configured Client wrapping a JSON-RPC Conn, a single rpc helper that
// threads method name and arguments through and surfaces server-side
// errors.
package mpctl
