// Package reference provides bibliographic name and title formatting
// following library cataloging conventions.
package reference

import "strings"

// Author is one entry of a record's author list. Both parts are optional;
// an entry without a given name is treated as a corporate or unknown name
// carried entirely in Family.
type Author struct {
	Given  string `json:"given,omitempty"`
	Family string `json:"family,omitempty"`
}

// UnknownAuthor is the rendering for an entry with neither name part.
const UnknownAuthor = "Unknown"

// FormatAuthor renders a single author. Personal names (given name present)
// render as "Family, Given" when reverse is true and "Given Family"
// otherwise; a missing family name renders as the empty string. Entries
// without a given name render as the family name alone.
func FormatAuthor(a Author, reverse bool) string {
	if a.Given != "" {
		if reverse {
			return a.Family + ", " + a.Given
		}
		return a.Given + " " + a.Family
	}
	if a.Family != "" {
		return a.Family
	}
	return UnknownAuthor
}

// FormatAuthors renders an ordered author list as a single statement of
// responsibility: the first author reversed ("Last, First"), the rest in
// natural order, two authors joined with "and", three or more as an
// Oxford-comma list.
func FormatAuthors(authors []Author) string {
	if len(authors) == 0 {
		return ""
	}

	first := FormatAuthor(authors[0], true)
	rest := make([]string, 0, len(authors)-1)
	for _, a := range authors[1:] {
		rest = append(rest, FormatAuthor(a, false))
	}

	switch len(rest) {
	case 0:
		return first
	case 1:
		return first + " and " + rest[0]
	default:
		return first + ", " + strings.Join(rest[:len(rest)-1], ", ") + ", and " + rest[len(rest)-1]
	}
}
