package handle

import (
	"bufio"
	"os"
	"sync"

	"go.jacobcolvin.com/scopetab/profiler"
)

// Status is the result of a path-based save, kept to small integers for
// cross-boundary callers.
type Status int

const (
	// StatusOK means the trace was written and flushed.
	StatusOK Status = 0
	// StatusOpenFailed means the destination could not be created or opened.
	StatusOpenFailed Status = 1
	// StatusWriteFailed means a write or close failed during export.
	StatusWriteFailed Status = 2
)

// ID is an opaque handle to a profiler or an in-flight scope. The zero ID is
// never valid.
type ID uintptr

// Table maps opaque handles to live profilers and in-flight scopes.
//
// All methods are safe for concurrent use.
//
// Create instances with [NewTable].
type Table struct {
	profilers map[ID]*profiler.Profiler
	scopes    map[ID]scopeSlot
	next      ID
	mu        sync.Mutex
}

// scopeSlot ties an in-flight scope to the profiler it was started on, so a
// scope handle cannot end on a different profiler.
type scopeSlot struct {
	owner *profiler.Profiler
	scope profiler.Scope
}

// NewTable creates an empty [Table].
func NewTable() *Table {
	return &Table{
		profilers: make(map[ID]*profiler.Profiler),
		scopes:    make(map[ID]scopeSlot),
	}
}

// Create registers a new enabled profiler and returns its handle.
func (t *Table) Create() ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID()
	t.profilers[id] = profiler.New()

	return id
}

// Destroy tears down the profiler behind h and invalidates the handle, along
// with any of its still-open scope handles. Unknown handles are ignored.
func (t *Table) Destroy(h ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.profilers[h]
	if !ok {
		return
	}

	delete(t.profilers, h)

	for id, slot := range t.scopes {
		if slot.owner == p {
			delete(t.scopes, id)
		}
	}

	_ = p.Close()
}

// ScopeStart begins a scope named name on the profiler behind h and returns a
// handle for the in-flight scope. Returns zero for an unknown profiler handle.
func (t *Table) ScopeStart(h ID, name string) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.profilers[h]
	if !ok {
		return 0
	}

	id := t.nextID()
	t.scopes[id] = scopeSlot{owner: p, scope: p.StartScope(name)}

	return id
}

// ScopeEnd finalizes the scope behind s on the profiler behind h and
// invalidates the scope handle. Mismatched or unknown handles are ignored.
func (t *Table) ScopeEnd(h, s ID) {
	t.mu.Lock()

	p, ok := t.profilers[h]
	slot, sok := t.scopes[s]

	if sok {
		delete(t.scopes, s)
	}

	t.mu.Unlock()

	if !ok || !sok || slot.owner != p {
		return
	}

	p.EndScope(slot.scope)
}

// Save exports the profiler behind h to a file at path.
func (t *Table) Save(h ID, path string) Status {
	t.mu.Lock()
	p, ok := t.profilers[h]
	t.mu.Unlock()

	if !ok {
		return StatusOpenFailed
	}

	f, err := os.Create(path) //nolint:gosec // Destination path crosses the binding boundary as-is.
	if err != nil {
		return StatusOpenFailed
	}

	err = p.Save(bufio.NewWriter(f))
	if err != nil {
		_ = f.Close()

		return StatusWriteFailed
	}

	err = f.Close()
	if err != nil {
		return StatusWriteFailed
	}

	return StatusOK
}

// nextID mints a fresh non-zero handle. Caller must hold t.mu.
func (t *Table) nextID() ID {
	t.next++

	return t.next
}
