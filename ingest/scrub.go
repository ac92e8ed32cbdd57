package ingest

import (
	"regexp"
	"strings"
)

// ctrlRe strips ASCII control chars plus the C1 range. The C1 range is
// where the infamous \x82 bullet artifact lives.
var ctrlRe = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-]")

var (
	multispaceRe  = regexp.MustCompile(`[ \t]{2,}`)
	loneBulletRe  = regexp.MustCompile(`\n•\s*\n`)
	bulletReplace = strings.NewReplacer(
		"", "• ",
		"", "• ",
		"", "• ",
		"◦", "• ",
		"▪", "• ",
		"□", "• ",
	)
)

// CleanString scrubs PDF extraction artifacts out of text: broken
// bullet glyphs are normalized, control characters stripped, runs of
// spaces collapsed, and orphan bullet lines removed.
func CleanString(s string) string {
	if s == "" {
		return ""
	}
	s = bulletReplace.Replace(s)
	s = ctrlRe.ReplaceAllString(s, "")
	s = multispaceRe.ReplaceAllString(s, " ")
	s = loneBulletRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// CleanSectionPath scrubs each element and drops empties. An empty
// result collapses to the root section.
func CleanSectionPath(path []string) []string {
	var cleaned []string
	for _, x := range path {
		if c := CleanString(x); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	cleaned = dedupeAdjacent(cleaned)
	if len(cleaned) == 0 {
		return []string{rootSection}
	}
	return cleaned
}
