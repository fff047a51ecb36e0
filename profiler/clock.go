package profiler

import "time"

// Tick is a monotonic timestamp in nanoseconds, truncated to 64 bits. The
// truncation is intentional: it halves per-scope storage versus a full
// [time.Time] and wraps only on timescales irrelevant to a single process
// run. A zero Tick marks a scope that was started while recording was
// disabled.
type Tick uint64

// epoch anchors the monotonic clock at package init so every Tick read uses
// the runtime's monotonic reading rather than the wall clock.
var epoch = time.Now()

// Now returns the current monotonic [Tick]. Successive calls never decrease.
func Now() Tick {
	return Tick(time.Since(epoch))
}
