package reference

import (
	"regexp"
	"strings"
)

// titleDelimiter matches the punctuation at which a catalog title statement
// breaks into title proper and remainder: colon, semicolon, backslash,
// slash, any Unicode dash, comma, period.
var titleDelimiter = regexp.MustCompile(`[:;\\/\p{Pd},.]`)

// SplitTitle segments a raw title into a main title and a remainder per
// ISBD convention. The title is tokenized on titleDelimiter with the
// delimiters retained as their own tokens and every token trimmed. With
// more than two tokens the main title is the first fragment plus its
// delimiter and the remainder is everything after, closed with " /". With
// two or fewer tokens the whole title is the main title, closed with " /",
// and the remainder is empty.
func SplitTitle(title string) (main, remainder string) {
	parts := splitRetaining(titleDelimiter, title)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 2 {
		return parts[0] + " " + parts[1], strings.Join(parts[2:], " ") + " /"
	}
	return strings.Join(parts, " ") + " /", ""
}

// splitRetaining splits s around matches of re, keeping each match as its
// own element. Empty segments between adjacent matches are retained.
func splitRetaining(re *regexp.Regexp, s string) []string {
	var parts []string
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		parts = append(parts, s[last:loc[0]], s[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(parts, s[last:])
}
