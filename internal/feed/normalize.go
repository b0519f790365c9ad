package feed

import (
	"html"
	"regexp"
	"strings"
	"time"
)

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
	asciiMap = strings.NewReplacer(
		"–", "-", // en dash
		"—", "-", // em dash
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"…", "...",
		" ", " ",
	)
)

// NormalizeText folds a feed text field to plain readable text: tags
// stripped, entities decoded, smart punctuation flattened, whitespace
// collapsed.
func NormalizeText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = asciiMap.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// dateLayouts covers the formats the monitored sources actually emit.
// RFC 1123 variants for RSS, ISO 8601 for Atom.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 -07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a publication timestamp against the known source
// formats. A date that matches none of them is absent, not guessed.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
