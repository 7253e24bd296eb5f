// Package writer serializes documents and their attribute state as object file lines.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xplnobj/codec/pkg/obj"
)

// ErrNoResolution is returned when an id-form reference is written without
// resolution data.
var ErrNoResolution = errors.New("reference resolution data is not available")

// LineSink receives one formatted line at a time, without its line break.
type LineSink interface {
	PrintLine(line string) error
}

// Resolver maps dataref and command names to their written form.
type Resolver = obj.Resolver

// Output is where a document is written.
type Output interface {
	LineSink
	Resolver
}

// IsID reports whether a reference is an id that needs resolution data.
func IsID(name string) bool {
	return name != "" && name[0] >= '0' && name[0] <= '9'
}

// PassThrough writes references unchanged and fails on ids.
type PassThrough struct{}

func (PassThrough) Dataref(name string) (string, error) {
	if IsID(name) {
		return "", fmt.Errorf("dataref %q: %w", name, ErrNoResolution)
	}
	return name, nil
}

func (PassThrough) Command(name string) (string, error) {
	if IsID(name) {
		return "", fmt.Errorf("command %q: %w", name, ErrNoResolution)
	}
	return name, nil
}

// BufferSink keeps written lines in memory.
type BufferSink struct {
	Resolver
	Lines []string
}

// NewBufferSink creates an in-memory output. A nil resolver means PassThrough.
func NewBufferSink(r Resolver) *BufferSink {
	if r == nil {
		r = PassThrough{}
	}
	return &BufferSink{Resolver: r}
}

func (b *BufferSink) PrintLine(line string) error {
	b.Lines = append(b.Lines, line)
	return nil
}

// Reset drops the collected lines.
func (b *BufferSink) Reset() { b.Lines = b.Lines[:0] }

// String returns the collected lines, each terminated by a line break.
func (b *BufferSink) String() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return strings.Join(b.Lines, "\n") + "\n"
}

// StreamSink writes lines to an io.Writer through a buffer. Call Flush when done.
type StreamSink struct {
	Resolver
	w *bufio.Writer
}

// NewStreamSink creates a buffered output. A nil resolver means PassThrough.
func NewStreamSink(w io.Writer, r Resolver) *StreamSink {
	if r == nil {
		r = PassThrough{}
	}
	return &StreamSink{Resolver: r, w: bufio.NewWriter(w)}
}

func (s *StreamSink) PrintLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("error writing line: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("error writing line: %w", err)
	}
	return nil
}

// Flush writes any buffered data.
func (s *StreamSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("error flushing output: %w", err)
	}
	return nil
}
