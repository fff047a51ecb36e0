// Package handle exposes the profiler behind opaque integer handles, mirroring
// the contract consumed by foreign-function bindings: create/destroy a
// profiler, begin/end scopes by handle, and save to a path returning a small
// integer [Status].
//
// No profiling logic lives here; every operation delegates to
// [go.jacobcolvin.com/scopetab/profiler] after validating the handle. Handles
// not returned by [Table.Create] or [Table.ScopeStart], or used after their
// destroy/end call, are a caller contract violation; this package degrades
// them to no-ops rather than undefined behavior.
package handle
