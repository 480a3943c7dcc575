// Package storage persists intermediate rows: a seven-column CSV container
// for the two-pass pipeline and a SQLite index for ad-hoc queries.
package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/openshelf/colophon/internal/snapshot"
)

// FieldNames is the fixed CSV header. Column order must not change: the
// second pass and the index both address columns by position.
var FieldNames = []string{"Primary Author", "Title", "Year", "Journal", "PDF", "DOI", "Full JSON"}

// RowWriter streams rows to CSV, writing the header once up front.
type RowWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewRowWriter creates a RowWriter over w.
func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{w: csv.NewWriter(w)}
}

// Write appends one row, emitting the header before the first row.
func (rw *RowWriter) Write(row snapshot.Row) error {
	if !rw.wroteHeader {
		if err := rw.w.Write(FieldNames); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		rw.wroteHeader = true
	}
	record := []string{row.PrimaryAuthor, row.Title, row.Year, row.Journal, row.PDF, row.DOI, row.FullJSON}
	if err := rw.w.Write(record); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	return nil
}

// Flush writes any buffered rows (and the header, if no row was ever
// written) to the underlying writer.
func (rw *RowWriter) Flush() error {
	if !rw.wroteHeader {
		if err := rw.w.Write(FieldNames); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		rw.wroteHeader = true
	}
	rw.w.Flush()
	return rw.w.Error()
}

// RowReader streams rows from a CSV produced by RowWriter.
type RowReader struct {
	r          *csv.Reader
	skipHeader bool
}

// NewRowReader creates a RowReader over r. The header row is skipped.
func NewRowReader(r io.Reader) *RowReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(FieldNames)
	return &RowReader{r: cr, skipHeader: true}
}

// Read returns the next row, or io.EOF when the input is exhausted.
func (rr *RowReader) Read() (snapshot.Row, error) {
	if rr.skipHeader {
		rr.skipHeader = false
		if _, err := rr.r.Read(); err != nil {
			if err == io.EOF {
				return snapshot.Row{}, io.EOF
			}
			return snapshot.Row{}, fmt.Errorf("reading CSV header: %w", err)
		}
	}

	record, err := rr.r.Read()
	if err != nil {
		if err == io.EOF {
			return snapshot.Row{}, io.EOF
		}
		return snapshot.Row{}, fmt.Errorf("reading CSV row: %w", err)
	}
	return snapshot.Row{
		PrimaryAuthor: record[0],
		Title:         record[1],
		Year:          record[2],
		Journal:       record[3],
		PDF:           record[4],
		DOI:           record[5],
		FullJSON:      record[6],
	}, nil
}
