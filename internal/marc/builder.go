package marc

import (
	"errors"
	"fmt"

	"github.com/openshelf/colophon/internal/reference"
	"github.com/openshelf/colophon/internal/snapshot"
)

// ErrMissingField is returned when a record lacks a key the catalog record
// needs. Builds are fail-fast: upstream filtering is expected to have
// guaranteed the required keys, so a missing one aborts the run rather
// than producing a partial record.
var ErrMissingField = errors.New("record missing required field")

// Build constructs the catalog record for one source record. It is a pure
// function of its input; fields are appended in a fixed order (100, 245,
// 260, 500, 856 primary, 856 DOI) that consumers must not change.
func Build(rec *snapshot.Record) (*Record, error) {
	title, err := required(rec.Title, "title")
	if err != nil {
		return nil, err
	}
	publisher, err := required(rec.Publisher, "publisher")
	if err != nil {
		return nil, err
	}
	journal, err := required(rec.JournalName, "journal_name")
	if err != nil {
		return nil, err
	}
	doiURL, err := required(rec.DOIURL, "doi_url")
	if err != nil {
		return nil, err
	}
	if rec.Year == nil {
		return nil, fmt.Errorf("%w: year", ErrMissingField)
	}
	if rec.BestOALocation == nil {
		return nil, fmt.Errorf("%w: best_oa_location", ErrMissingField)
	}

	r := NewRecord()

	if len(rec.ZAuthors) > 0 {
		r.AddField(Field{
			Tag: "100", Ind1: '0', Ind2: ' ',
			Subfields: []Subfield{
				{'a', reference.FormatAuthor(rec.ZAuthors[0], true)},
			},
		})
	}

	main, remainder := reference.SplitTitle(title)
	titleField := Field{Tag: "245", Ind1: '0', Ind2: '0'}
	if remainder != "" {
		titleField.Subfields = []Subfield{
			{'a', main},
			{'b', remainder},
			{'c', reference.FormatAuthors(rec.ZAuthors)},
		}
	} else {
		titleField.Subfields = []Subfield{
			{'a', main},
			{'c', reference.FormatAuthors(rec.ZAuthors)},
		}
	}
	r.AddField(titleField)

	r.AddField(Field{
		Tag: "260", Ind1: ' ', Ind2: ' ',
		Subfields: []Subfield{
			{'b', publisher},
			{'c', rec.Year.String()},
		},
	})

	r.AddField(Field{
		Tag: "500", Ind1: ' ', Ind2: ' ',
		Subfields: []Subfield{
			{'a', fmt.Sprintf("Article from %s.", journal)},
		},
	})

	r.AddField(Field{
		Tag: "856", Ind1: '4', Ind2: '0',
		Subfields: []Subfield{
			{'u', rec.BestOALocation.URL},
			{'y', "View article as PDF"},
		},
	})

	r.AddField(Field{
		Tag: "856", Ind1: ' ', Ind2: ' ',
		Subfields: []Subfield{
			{'u', doiURL},
			{'y', "DOI"},
		},
	})

	return r, nil
}

func required(s *string, key string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return *s, nil
}
