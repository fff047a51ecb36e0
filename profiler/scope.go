package profiler

// Scope is one named time range: an in-flight or completed measurement of a
// code region. It is a plain value; nothing is registered until the scope is
// passed to [Profiler.EndScope], which copies it into the calling goroutine's
// bucket.
//
// Name is retained by reference, not copied, so it must stay valid until the
// owning [Profiler] has exported or been closed.
type Scope struct {
	// Name identifies the measured region.
	Name string
	// Start is the tick captured when the scope began. Zero means the scope
	// was started while recording was disabled.
	Start Tick
	// End is the tick captured when the scope finished. Zero until then.
	End Tick
}

// Begin returns a [Scope] started at the current tick. It has no side effects
// beyond the clock read.
func Begin(name string) Scope {
	return Scope{Name: name, Start: Now()}
}

// finish stamps the scope's end tick. Calling it again overwrites End with a
// later reading.
func (s *Scope) finish() {
	s.End = Now()
}
