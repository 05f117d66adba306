package mptrace

import (
	"fmt"
	"io"
	"strings"
)

// A Tracer writes trace lines to an underlying writer. The zero value
// is unusable; use New.
type Tracer struct {
	w io.Writer
}

// New constructs a Tracer writing to w.
func New(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Mapping logs a derived DSS mapping.
func (t *Tracer) Mapping(token uint32, dataSeq uint64, subSeq uint32, dataLen uint32, infinite bool) {
	t.writeFields("mapping",
		field("token", token),
		field("dsn", dataSeq),
		field("subseq", subSeq),
		field("len", dataLen),
		field("infinite", infinite),
	)
}

// Scheduled logs the scheduler's choice of subflow for a segment.
func (t *Tracer) Scheduled(token uint32, pathIndex uint8, dataSeq uint64, length int, reinject bool) {
	t.writeFields("scheduled",
		field("token", token),
		field("path", pathIndex),
		field("dsn", dataSeq),
		field("len", length),
		field("reinject", reinject),
	)
}

// SubflowEvent logs an attach, detach, PF transition, or fallback
// event on a subflow.
func (t *Tracer) SubflowEvent(token uint32, pathIndex uint8, event string) {
	t.writeFields("subflow",
		field("token", token),
		field("path", pathIndex),
		field("event", event),
	)
}

// InterfaceEvent logs a local interface state change, writing
// flagsString (for example from mppm.InterfaceFlagsString) as its
// flags field; the numeric flags argument is not printed.
func (t *Tracer) InterfaceEvent(name string, index int, flags uint32, flagsString string) {
	t.writeFields("iface",
		field("name", name),
		field("index", index),
		field("flags", flagsString),
	)
}

type kv struct {
	key string
	val interface{}
}

func field(key string, val interface{}) kv {
	return kv{key: key, val: val}
}

func (t *Tracer) writeFields(kind string, fields ...kv) {
	var b strings.Builder
	b.WriteString(kind)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.key, f.val)
	}
	b.WriteByte('\n')
	io.WriteString(t.w, b.String())
}
