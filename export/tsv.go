package export

import (
	"fmt"
	"io"
)

// Header is the fixed first row of every exported trace. It is always written,
// even when no data rows follow.
const Header = "thread_id\trange_name\trange_start_nano\trange_end_nano"

// Writer encodes trace rows onto an [io.Writer] in the tab-separated trace
// format. It performs no buffering of its own; wrap the destination in a
// [Sink] and flush after the last row.
//
// Create instances with [NewWriter].
type Writer struct {
	w io.Writer
}

// NewWriter creates a [Writer] targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the fixed [Header] row.
func (tw *Writer) WriteHeader() error {
	_, err := io.WriteString(tw.w, Header+"\n")
	if err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}

	return nil
}

// WriteRow writes one completed range: thread id, range name, and the start
// and end ticks in nanoseconds, tab-separated and newline-terminated.
func (tw *Writer) WriteRow(tid uint64, name string, start, end uint64) error {
	_, err := fmt.Fprintf(tw.w, "%d\t%s\t%d\t%d\n", tid, name, start, end)
	if err != nil {
		return fmt.Errorf("writing trace row: %w", err)
	}

	return nil
}
