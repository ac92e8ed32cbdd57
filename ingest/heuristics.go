package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sahilrangra/ayur-llm/core"
)

// Strong heading patterns: numbered sections and ALL CAPS report headers.
var (
	numHeadingRe = regexp.MustCompile(`^\s*(\d+(\.\d+){0,6})\s+[A-Za-z].+`)
	allCapsRe    = regexp.MustCompile(`^[A-Z][A-Z0-9 \-&,()/]{6,}$`)
)

// Lines that must never be treated as headings: page labels, URLs,
// contact blocks, cover-page roles, dates and legal boilerplate.
var badHeadingRe = regexp.MustCompile(`(?i)(` +
	`\bpage\b\s*[ivxlcdm0-9]+\b|` +
	`\bof\s+\d+\b|` +
	`\bwww\.|https?://|@|` +
	`\bphone\b|\be-?mail\b|\bfax\b|` +
	`\bministry\b.*\bhealth\b|` +
	`\bgovernment\b.*\bindia\b|` +
	`\bdepartment\s+of\s+ayush\b|` +
	`\bsecretary\b|` +
	`\bdg,?\s*ccras\b|\bddg,?\s*ccras\b|` +
	`\bcompiled\s+by\b|\breviewer\b|\beditor\b|\bpublisher\b|` +
	`\bsupervision\b|\bguidance\b|\bcompiled\b|` +
	`\bforeword\b$|\bcontents\b$|\bpreface\b$|` +
	`\b\d{1,2}\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)\b|` +
	`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b\s+\d{4}\b|` +
	`\bcopyright\b|\bisbn\b|\ball\s+rights\s+reserved\b|` +
	`\bprinted\s+by\b|\bprinter\b|\bwebsite\b` +
	`)`)

// Short headings allowed verbatim (front matter).
var frontMatter = map[string]bool{
	"preface":           true,
	"contents":          true,
	"foreword":          true,
	"introduction":      true,
	"glossary":          true,
	"acknowledgements":  true,
	"acknowledgments":   true,
	"index":             true,
	"prologue":          true,
	"executive summary": true,
}

// Narrative verbs that usually mark a sentence rather than a heading.
var sentenceVerbRe = regexp.MustCompile(`(?i)\b(is|are|was|were|have|has|had|will|shall|should|can|could|may|might)\b`)

// LooksLikeHeading reports whether a line should be treated as a section
// heading. It blocks watermarks, addresses, roles, dates and page labels,
// and accepts numbered headings, ALL CAPS headers, and whitelisted front
// matter like "Preface".
func LooksLikeHeading(line string, minLen, maxLen int) bool {
	s := strings.TrimSpace(line)
	if len(s) < minLen || len(s) > maxLen {
		return false
	}

	low := strings.ToLower(s)
	if frontMatter[low] {
		return true
	}

	if badHeadingRe.MatchString(s) {
		return false
	}

	upper := isUpper(s)

	// Too many commas usually means a clause, not a heading.
	if strings.Count(s, ",") >= 2 && !upper {
		return false
	}
	if sentenceVerbRe.MatchString(low) {
		return false
	}
	// Period-ending lines are almost never headings (except ALL CAPS).
	if strings.HasSuffix(s, ".") && !upper {
		return false
	}
	// Colon-ending long lines are often sentence labels.
	if strings.HasSuffix(s, ":") && len(strings.Fields(s)) > 8 && !upper {
		return false
	}
	if strings.HasSuffix(s, ",") && !upper {
		return false
	}

	if numHeadingRe.MatchString(s) {
		return true
	}
	return allCapsRe.MatchString(s)
}

// isUpper reports whether s contains at least one cased letter and no
// lowercase letters.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// InferSourceFromTitle is a lightweight pre-classification based on the
// title alone. ClassifyDocument does the final, more accurate pass.
func InferSourceFromTitle(title string) core.Source {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "who") || strings.Contains(t, "world health organization"):
		return core.SourceWHO
	case strings.Contains(t, "ayush") || strings.Contains(t, "npcdcs"):
		return core.SourceAyushGov
	case strings.Contains(t, "ccras") || strings.Contains(t, "central council for research in ayurved"):
		return core.SourceCCRAS
	case strings.Contains(t, "charaka") || strings.Contains(t, "caraka"):
		return core.SourceClassical
	default:
		return core.SourceUnknown
	}
}

// AutoTags derives coarse topical tags from the document title.
func AutoTags(title string) []string {
	t := strings.ToLower(title)
	var tags []string
	if strings.Contains(t, "safety") || strings.Contains(t, "benchmark") {
		tags = append(tags, "safety", "regulation")
	}
	if strings.Contains(t, "diet") || strings.Contains(t, "lifestyle") {
		tags = append(tags, "diet", "lifestyle")
	}
	if strings.Contains(t, "strategy") || strings.Contains(t, "policy") {
		tags = append(tags, "policy", "evidence")
	}
	if strings.Contains(t, "charaka") || strings.Contains(t, "caraka") {
		tags = append(tags, "classical", "sutra")
	}

	var out []string
	seen := map[string]bool{}
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
