// Package profiler records named time ranges ("scopes") per goroutine with
// minimal overhead, for export as tab-separated trace data.
//
// A [Profiler] owns one bucket of completed [Scope] values per goroutine that
// has ever finished a scope. Starting and ending scopes is cheap: the enabled
// flag is a single atomic load, and a disabled profiler performs no clock
// read and takes no lock. Ending a scope on an enabled profiler takes the
// registry lock briefly to append to the calling goroutine's bucket.
//
// Typical usage brackets a region with [Profiler.StartScope] and
// [Profiler.EndScope], then exports with [Profiler.Save]:
//
//	p := profiler.New()
//
//	s := p.StartScope("load_index")
//	loadIndex()
//	p.EndScope(s)
//
//	var buf export.Buffer
//	err := p.Save(&buf)
//
// Scope names are retained by reference until export; callers must keep them
// valid for the lifetime of the Profiler. The recording path never returns an
// error: if a scope cannot be recorded it is dropped silently, so
// instrumentation can never fail the instrumented application. Only
// [Profiler.Save] and [Profiler.SaveFile] surface errors.
//
// [Config] integrates with CLI applications via [github.com/spf13/pflag]
// flags and [github.com/spf13/cobra] shell completions.
package profiler
