// Package export defines the output contract for recorded traces.
//
// A [Sink] accepts ordered byte writes plus a flush, and is supplied by the
// caller: a [*bufio.Writer] wrapping a file satisfies it directly, and
// [Buffer] provides an in-memory implementation for tests and embedding.
//
// A [Writer] encodes trace rows in the fixed tab-separated format consumed by
// downstream trace-visualization tooling:
//
//	thread_id\trange_name\trange_start_nano\trange_end_nano
//	<tid>\t<name>\t<start>\t<end>
//
// The header row and column order are stable byte-for-byte; do not change them
// without coordinating with consumers of the format.
package export
