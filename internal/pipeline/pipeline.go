// Package pipeline drives snapshot records through the filter and into an
// output sink, one line at a time. There is one driver with a selectable
// sink: CSV for the two-pass route, MARC for the single-pass route.
package pipeline

import (
	"fmt"
	"io"

	"github.com/openshelf/colophon/internal/marc"
	"github.com/openshelf/colophon/internal/snapshot"
	"github.com/openshelf/colophon/internal/storage"
)

// SnapshotLineEstimate is the approximate record count of a full snapshot.
// Display-only: progress reporting must not rely on it for correctness.
const SnapshotLineEstimate = 114164038

// Sink consumes filtered rows. Write is called once per matching record in
// input order; Flush is called once after the stream ends.
type Sink interface {
	Write(row snapshot.Row) error
	Flush() error
}

// Progress receives the monotonically increasing count of lines consumed.
type Progress func(lines int64)

// Run streams the snapshot through the filter into the sink, strictly
// sequentially: each line is fully processed before the next is read.
// Errors are fatal to the run; a partially written output is the caller's
// signal to rerun from scratch.
func Run(stream *snapshot.Stream, filter *snapshot.Filter, sink Sink, progress Progress) error {
	var lines int64
	for stream.Scan() {
		lines++
		if progress != nil {
			progress(lines)
		}

		row, ok, err := filter.Apply(stream.Line())
		if err != nil {
			return fmt.Errorf("line %d: %w", lines, err)
		}
		if !ok {
			continue
		}
		if err := sink.Write(row); err != nil {
			return fmt.Errorf("line %d: %w", lines, err)
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return sink.Flush()
}

// RunRows feeds already-filtered rows (the second pass) into a sink.
func RunRows(reader *storage.RowReader, sink Sink, progress Progress) error {
	var lines int64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		lines++
		if progress != nil {
			progress(lines)
		}
		if err := sink.Write(row); err != nil {
			return fmt.Errorf("row %d: %w", lines, err)
		}
	}
	return sink.Flush()
}

// CSVSink writes rows to the intermediate CSV container.
type CSVSink struct {
	w *storage.RowWriter
}

// NewCSVSink creates a CSVSink over w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: storage.NewRowWriter(w)}
}

// Write appends one CSV row.
func (s *CSVSink) Write(row snapshot.Row) error {
	return s.w.Write(row)
}

// Flush flushes buffered CSV output.
func (s *CSVSink) Flush() error {
	return s.w.Flush()
}

// MARCSink rebuilds each row's full record from its embedded JSON and
// writes the serialized catalog record. Records concatenate directly.
type MARCSink struct {
	w io.Writer
}

// NewMARCSink creates a MARCSink over w.
func NewMARCSink(w io.Writer) *MARCSink {
	return &MARCSink{w: w}
}

// Write builds and serializes the catalog record for one row.
func (s *MARCSink) Write(row snapshot.Row) error {
	rec, err := snapshot.Decode([]byte(row.FullJSON))
	if err != nil {
		return err
	}
	record, err := marc.Build(rec)
	if err != nil {
		return err
	}
	_, err = s.w.Write(record.AsMARC())
	return err
}

// Flush is a no-op; MARC records are written unbuffered.
func (s *MARCSink) Flush() error {
	return nil
}
