package profiler

import (
	"bufio"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"go.jacobcolvin.com/scopetab/export"
)

// Profiler is the central registry for recorded scopes. It owns one bucket of
// completed scopes per goroutine id, an atomically toggled enabled flag, and
// the lock guarding the bucket map.
//
// All methods except [Profiler.Close] are safe for concurrent use.
//
// Create instances with [New] or [Config.NewProfiler].
type Profiler struct {
	buckets map[uint64][]Scope
	mu      sync.Mutex
	enabled atomic.Bool
}

// New creates an enabled [Profiler] with no recorded scopes.
func New() *Profiler {
	p := &Profiler{
		buckets: make(map[uint64][]Scope),
	}
	p.enabled.Store(true)

	return p
}

// Enable turns recording on for subsequent [Profiler.StartScope] and
// [Profiler.EndScope] calls. Scopes already in flight are unaffected until
// their EndScope call.
func (p *Profiler) Enable() {
	p.enabled.Store(true)
}

// Disable turns recording off. The disabled path is lock-free and
// allocation-free: StartScope skips the clock read and EndScope drops the
// scope without touching the registry.
func (p *Profiler) Disable() {
	p.enabled.Store(false)
}

// Enabled reports whether recording is currently on.
func (p *Profiler) Enabled() bool {
	return p.enabled.Load()
}

// StartScope begins a scope named name. When recording is disabled it returns
// a scope with a zero start tick and performs no clock read.
func (p *Profiler) StartScope(name string) Scope {
	if !p.enabled.Load() {
		return Scope{Name: name}
	}

	return Begin(name)
}

// EndScope finalizes s and appends it to the calling goroutine's bucket.
//
// When recording is disabled the scope is dropped, even if it was started
// while enabled. A scope started while disabled but ended while enabled is
// recorded with zero duration at its end tick, rather than a range spanning
// from the epoch.
func (p *Profiler) EndScope(s Scope) {
	if !p.enabled.Load() {
		return
	}

	s.finish()

	if s.Start == 0 {
		// Started while disabled; clamp to a zero-duration range.
		s.Start = s.End
	}

	id := goroutineID()

	p.mu.Lock()
	if p.buckets != nil {
		p.buckets[id] = append(p.buckets[id], s)
	}
	p.mu.Unlock()
}

// Save exports every recorded scope to sink in the tab-separated trace
// format: the fixed header row, then one row per scope. Buckets are traversed
// in ascending goroutine-id order, so repeated calls without intervening
// recording produce byte-identical output.
//
// The registry lock is held for the duration of the traversal; the sink is
// flushed after it is released. A sink write failure aborts the export and is
// returned; partial output may already be in the sink.
func (p *Profiler) Save(sink export.Sink) error {
	err := p.writeRows(sink)
	if err != nil {
		return err
	}

	err = sink.Flush()
	if err != nil {
		return fmt.Errorf("flushing trace: %w", err)
	}

	return nil
}

// writeRows streams the header and all bucket contents under the lock.
func (p *Profiler) writeRows(sink export.Sink) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w := export.NewWriter(sink)

	err := w.WriteHeader()
	if err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(p.buckets)) {
		for _, s := range p.buckets[id] {
			err = w.WriteRow(id, s.Name, uint64(s.Start), uint64(s.End))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// SaveFile exports the trace to a file at path, creating or truncating it.
func (p *Profiler) SaveFile(path string) error {
	f, err := os.Create(path) //nolint:gosec // Trace path is caller-supplied by design.
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}

	err = p.Save(bufio.NewWriter(f))
	if err != nil {
		must(f.Close())

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}

	return nil
}

// Close releases all buckets and the registry map. It must not be called
// concurrently with any other method; this is a teardown-time contract.
// Scopes ended after Close are dropped.
func (p *Profiler) Close() error {
	p.mu.Lock()
	p.buckets = nil
	p.mu.Unlock()

	return nil
}

// goroutineID returns the calling goroutine's id, parsed from the
// runtime.Stack header line ("goroutine 123 [running]:"). Only called on the
// EndScope slow path, which already takes the registry lock.
func goroutineID() uint64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)

	const prefix = len("goroutine ")

	var id uint64

	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}

		id = id*10 + uint64(c-'0')
	}

	return id
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
