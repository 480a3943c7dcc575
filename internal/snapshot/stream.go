package snapshot

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// MaxLineCapacity is the maximum buffer size for one snapshot line (16MB).
// Snapshot records carry every known location of an article and run long.
const MaxLineCapacity = 16 * 1024 * 1024

// Stream reads a snapshot line by line. It is a finite, forward-only
// sequence; lines are valid only until the next Scan call.
type Stream struct {
	scanner *bufio.Scanner
	closers []io.Closer
}

// Open opens a gzip-compressed snapshot file for streaming.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading snapshot gzip header: %w", err)
	}

	s := New(gz)
	s.closers = []io.Closer{gz, f}
	return s, nil
}

// New wraps an already-decompressed line stream.
func New(r io.Reader) *Stream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineCapacity)
	return &Stream{scanner: scanner}
}

// Scan advances to the next line, returning false at end of input or error.
func (s *Stream) Scan() bool {
	return s.scanner.Scan()
}

// Line returns the current line without its trailing newline.
func (s *Stream) Line() []byte {
	return s.scanner.Bytes()
}

// Err returns the first error encountered while scanning.
func (s *Stream) Err() error {
	return s.scanner.Err()
}

// Close releases the underlying file and decompressor, if any.
func (s *Stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
