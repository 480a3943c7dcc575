// Package rule loads and applies title match rules. A rule is one regular
// expression read from a plain-text file; a title matches a Set when any
// rule matches the normalized title.
package rule

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNoRules is returned when a Set would be constructed with no patterns.
var ErrNoRules = errors.New("no title match rules given")

// ErrEmptyRule is returned when a rule file contains no pattern.
var ErrEmptyRule = errors.New("empty rule file")

// Set is an immutable collection of compiled title match rules. Construct
// once at startup and pass by value; matching is read-only.
type Set struct {
	rules []*regexp.Regexp
}

// stripMarks decomposes to NFD and removes combining marks, so "café"
// normalizes to "cafe". Titles are normalized this way before matching;
// patterns are not.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Compile builds a Set from raw patterns. Matching is made case-insensitive
// here rather than in the pattern files.
func Compile(patterns []string) (Set, error) {
	if len(patterns) == 0 {
		return Set{}, ErrNoRules
	}

	rules := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Set{}, fmt.Errorf("compiling rule %q: %w", p, err)
		}
		rules = append(rules, re)
	}
	return Set{rules: rules}, nil
}

// LoadFiles reads one pattern per file and compiles the Set.
func LoadFiles(paths []string) (Set, error) {
	if len(paths) == 0 {
		return Set{}, ErrNoRules
	}

	patterns := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Set{}, fmt.Errorf("reading rule file: %w", err)
		}
		pattern := strings.TrimSpace(string(data))
		if pattern == "" {
			return Set{}, fmt.Errorf("%w: %s", ErrEmptyRule, path)
		}
		patterns = append(patterns, pattern)
	}
	return Compile(patterns)
}

// Len returns the number of rules in the set.
func (s Set) Len() int {
	return len(s.rules)
}

// MatchTitle reports whether any rule matches the normalized title.
func (s Set) MatchTitle(title string) bool {
	normalized := Normalize(title)
	for _, re := range s.rules {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Normalize strips diacritics from a title and lower-cases it. The
// transformation is one-directional: rules are applied as written.
func Normalize(title string) string {
	stripped, _, err := transform.String(stripMarks, title)
	if err != nil {
		// Remove-transformers don't fail on valid UTF-8; fall back to
		// the raw title for anything else.
		stripped = title
	}
	return strings.ToLower(stripped)
}
