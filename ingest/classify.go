package ingest

import (
	"path/filepath"
	"strings"

	"github.com/sahilrangra/ayur-llm/core"
)

// Titles that are really export artifacts, not titles.
var badTitleMarkers = []string{
	"new doc",
	"newstarting",
	"microsoft word",
	".doc",
	"starting content pages",
}

// IsBadTitle reports whether a title is empty or an export artifact.
func IsBadTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return true
	}
	for _, m := range badTitleMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// InferSource classifies a document using its filename, title and a
// sample of its text. This is the authoritative classification; the
// title-only guess made at parse time is only provisional.
func InferSource(filename, title, sampleText string) core.Source {
	f := strings.ToLower(filename)
	t := strings.ToLower(title)
	x := strings.ToLower(sampleText)

	switch {
	case strings.Contains(f, "who") || strings.Contains(t, "who ") ||
		strings.Contains(x, "world health organization") || strings.Contains(x, "who benchmarks"):
		return core.SourceWHO

	case strings.Contains(f, "npcdcs") || strings.Contains(x, "integration of ayush") ||
		strings.Contains(x, "ministry of ayush") ||
		(strings.Contains(x, "government of india") && strings.Contains(x, "ayush")):
		return core.SourceAyushGov

	case strings.Contains(x, "ccras") || strings.Contains(x, "central council for research in ayurveda") ||
		strings.Contains(x, "research in ayurveda and siddha"):
		return core.SourceCCRAS

	case strings.Contains(f, "charaka") || strings.Contains(f, "caraka") ||
		strings.Contains(x, "charaka samhita"):
		return core.SourceClassical

	// Dossier material groups with CCRAS.
	case strings.Contains(f, "science_of_lifedossier") || strings.Contains(x, "the science of life"):
		return core.SourceCCRAS

	default:
		return core.SourceUnknown
	}
}

// ChooseBetterTitle keeps a sane existing title, otherwise picks the
// first plausible line from the sample text, falling back to the
// filename stem.
func ChooseBetterTitle(filename, oldTitle, sampleText string) string {
	if !IsBadTitle(oldTitle) {
		return CleanString(oldTitle)
	}

	var lines []string
	for _, l := range strings.Split(sampleText, "\n") {
		if c := CleanString(l); len(c) >= 6 {
			lines = append(lines, c)
		}
	}
	limit := len(lines)
	if limit > 30 {
		limit = 30
	}
	for _, l := range lines[:limit] {
		if len(l) > 8 && len(l) < 120 {
			return l
		}
	}

	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
}
