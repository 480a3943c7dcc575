// Package snapshot decodes and filters records from a bulk open-access
// metadata snapshot: gzip-compressed, one JSON object per line.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/openshelf/colophon/internal/reference"
)

// Location is an open-access location of a record.
type Location struct {
	URL string `json:"url"`
}

// Record is one decoded snapshot line. Fields that the source emits as
// null are pointer-typed so null and zero stay distinguishable; downstream
// consumers decide which absences are fatal.
type Record struct {
	Title          *string            `json:"title"`
	Year           *json.Number       `json:"year"`
	JournalName    *string            `json:"journal_name"`
	Publisher      *string            `json:"publisher"`
	DOIURL         *string            `json:"doi_url"`
	ZAuthors       []reference.Author `json:"z_authors"`
	BestOALocation *Location          `json:"best_oa_location"`
}

// Decode parses one snapshot line into a Record.
func Decode(line []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &rec, nil
}

// Row is the intermediate tabular projection of one matched record. Column
// order is fixed; FullJSON holds the original snapshot line byte-for-byte so
// a later pass can rebuild the complete record.
type Row struct {
	PrimaryAuthor string
	Title         string
	Year          string
	Journal       string
	PDF           string
	DOI           string
	FullJSON      string
}

// ToRow projects a record into its intermediate row. The record must have
// passed the filter (non-null title and best_oa_location); other columns
// render empty when null.
func (r *Record) ToRow(line []byte) Row {
	row := Row{
		Title:    deref(r.Title),
		Journal:  deref(r.JournalName),
		PDF:      r.BestOALocation.URL,
		DOI:      deref(r.DOIURL),
		FullJSON: string(line),
	}
	if r.Year != nil {
		row.Year = r.Year.String()
	}
	if len(r.ZAuthors) > 0 {
		row.PrimaryAuthor = reference.FormatAuthor(r.ZAuthors[0], true)
	} else {
		row.PrimaryAuthor = reference.UnknownAuthor
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
