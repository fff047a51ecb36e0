package export

import (
	"bytes"
	"io"
)

// Sink is an abstract trace destination: sequential byte writes plus a flush.
// No seeking or reading is required. A [*bufio.Writer] satisfies Sink.
type Sink interface {
	io.Writer

	// Flush forces any buffered bytes to the underlying destination.
	Flush() error
}

// Buffer is an in-memory [Sink] backed by a [bytes.Buffer]. Flush is a no-op.
//
// The zero value is ready to use.
type Buffer struct {
	bytes.Buffer
}

// Flush implements [Sink]. It always returns nil.
func (b *Buffer) Flush() error { return nil }
