package ingest

import (
	"sort"
	"strings"
	"unicode"
)

const rootSection = "Document"

// BuildSectionPaths labels each kept page with a section path derived
// from strict heading detection only. It never maps table-of-contents
// entries to pages. Depth is capped at three: ["Document", H1] or
// ["Document", H1, H2]. Adjacent repeats are deduped.
func BuildSectionPaths(pages map[int]string, minLen, maxLen int) map[int][]string {
	sectionByPage := make(map[int][]string, len(pages))
	current := []string{rootSection}

	nums := make([]int, 0, len(pages))
	for pno := range pages {
		nums = append(nums, pno)
	}
	sort.Ints(nums)

	for _, pno := range nums {
		heading := firstHeading(pages[pno], minLen, maxLen)
		if heading != "" {
			// Numbered or ALL CAPS headings replace the H1; anything
			// else nests as H2 under the current H1.
			numbered := len(heading) > 0 && unicode.IsDigit(rune(heading[0]))
			if numbered || isUpper(heading) || len(current) == 1 {
				current = []string{rootSection, heading}
			} else {
				current = []string{rootSection, current[1], heading}
			}
			current = dedupeAdjacent(current)
		}

		path := make([]string, len(current))
		copy(path, current)
		sectionByPage[pno] = path
	}

	return sectionByPage
}

func firstHeading(text string, minLen, maxLen int) string {
	for _, ln := range strings.Split(text, "\n") {
		s := strings.TrimSpace(ln)
		if s == "" {
			continue
		}
		if LooksLikeHeading(s, minLen, maxLen) {
			return s
		}
	}
	return ""
}

func dedupeAdjacent(seq []string) []string {
	var out []string
	for _, x := range seq {
		if len(out) == 0 || out[len(out)-1] != x {
			out = append(out, x)
		}
	}
	return out
}
