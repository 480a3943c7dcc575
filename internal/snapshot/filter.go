package snapshot

import (
	"github.com/openshelf/colophon/internal/rule"
)

// Filter decides record inclusion by title match and projects matches into
// intermediate rows. The rule set is fixed at construction.
type Filter struct {
	rules rule.Set
}

// NewFilter creates a Filter over an immutable rule set.
func NewFilter(rules rule.Set) *Filter {
	return &Filter{rules: rules}
}

// Apply decodes one snapshot line and either projects it to a row (ok true)
// or drops it (ok false). Records without a title or without an open-access
// location are dropped before matching. Decode failures are fatal to the
// line, not recovered.
func (f *Filter) Apply(line []byte) (row Row, ok bool, err error) {
	rec, err := Decode(line)
	if err != nil {
		return Row{}, false, err
	}

	if rec.BestOALocation == nil || rec.Title == nil {
		return Row{}, false, nil
	}

	if !f.rules.MatchTitle(*rec.Title) {
		return Row{}, false, nil
	}

	return rec.ToRow(line), true, nil
}
