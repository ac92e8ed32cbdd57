// Copyright 2025 Ayur LLM Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Passage is a chunk of contiguous page text carrying its page span and
// section path.
type Passage struct {
	PageStart   int
	PageEnd     int
	SectionPath []string
	Text        string
}

// Front-matter boundaries. Merging across these pollutes retrieval:
// "Contents" leaking into "Preface" passages is the classic failure.
var frontSplitMarkers = []string{
	"table of contents",
	"contents",
	"index",
	"preface",
	"foreword",
	"introduction",
	"prologue",
	"executive summary",
	"glossary",
	"acknowledgements",
	"acknowledgments",
}

var (
	frontSplitRe = regexp.MustCompile(`(?i)^\s*(` + strings.Join(frontSplitMarkers, "|") + `)\s*$`)
	tocSignalRe  = regexp.MustCompile(`(?i)^\s*(contents|table of contents)\s*$`)
	tocLeaderRe  = regexp.MustCompile(`(?i)\.{3,}|(\bpage\b\s*\d+)`)
	noiseRe      = regexp.MustCompile(`(?i)^\s*(page\s*[ivxlcdm0-9]+(\s*of\s*\d+)?)\s*$`)
)

func isFrontMarker(s string) bool {
	return frontSplitRe.MatchString(strings.TrimSpace(s))
}

func cleanLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		ln := strings.TrimSpace(raw)
		if ln == "" || noiseRe.MatchString(ln) {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}

// splitPageIntoBlocks cuts a page at strong front-matter markers. Each
// marker becomes its own single-line block. On TOC-looking pages any
// bare marker word splits too.
func splitPageIntoBlocks(lines []string) [][]string {
	if len(lines) == 0 {
		return nil
	}

	tocish := false
	leaders := 0
	limit := len(lines)
	if limit > 80 {
		limit = 80
	}
	for _, ln := range lines[:limit] {
		if tocSignalRe.MatchString(ln) {
			tocish = true
		}
		if tocLeaderRe.MatchString(ln) {
			leaders++
		}
	}
	if leaders >= 8 {
		tocish = true
	}

	var blocks [][]string
	var cur []string
	for _, ln := range lines {
		if frontSplitRe.MatchString(ln) || (tocish && inFrontMarkers(ln)) {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			blocks = append(blocks, []string{ln})
			continue
		}
		cur = append(cur, ln)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func inFrontMarkers(ln string) bool {
	low := strings.ToLower(ln)
	for _, m := range frontSplitMarkers {
		if low == m {
			return true
		}
	}
	return false
}

type passageBuilder struct {
	cfg      Config
	sections map[int][]string

	passages []Passage
	parts    []string
	start    int
	end      int
	section  []string
}

// BuildPassages turns kept pages into passages: it strips noise lines,
// splits pages into semantic blocks at front-matter boundaries, packs
// blocks up to roughly TargetChars, carries OverlapChars of tail text
// across size-driven splits, and never merges across a front marker.
// Section paths are carried per page.
func BuildPassages(pages []PageText, sections map[int][]string, cfg Config) []Passage {
	b := &passageBuilder{
		cfg:      cfg,
		sections: sections,
		section:  []string{rootSection},
	}

	for _, page := range pages {
		pageSection := dedupeAdjacent(b.sectionFor(page.PageNum))

		for _, block := range splitPageIntoBlocks(cleanLines(page.Text)) {
			bt := strings.TrimSpace(strings.Join(block, "\n"))
			if bt == "" {
				continue
			}

			marker := isFrontMarker(bt) && !strings.Contains(bt, "\n")

			if b.start == 0 {
				b.startNew(page.PageNum)
			}

			// A section change across a page boundary flushes, keeping
			// passages section-pure.
			if len(b.parts) > 0 && b.end != page.PageNum && !equalPaths(pageSection, dedupeAdjacent(b.section)) {
				b.flush()
				b.startNew(page.PageNum)
			}

			if marker {
				if len(b.parts) > 0 {
					b.flush()
				}
				b.startNew(page.PageNum)
				b.parts = append(b.parts, bt)
				b.end = page.PageNum
				b.flush()
				continue
			}

			if len(b.parts) > 0 && b.currentLen()+1+len(bt) > cfg.TargetChars {
				prev := strings.Join(b.parts, "\n")
				b.flush()
				b.startNew(page.PageNum)
				if tail := overlapTail(prev, cfg.OverlapChars); tail != "" {
					b.parts = append(b.parts, tail)
				}
			}

			b.parts = append(b.parts, bt)
			b.end = page.PageNum
			b.section = pageSection
		}
	}

	b.flush()
	return b.passages
}

func (b *passageBuilder) sectionFor(pno int) []string {
	if path, ok := b.sections[pno]; ok {
		return path
	}
	return []string{rootSection}
}

func (b *passageBuilder) startNew(pno int) {
	b.start = pno
	b.end = pno
	b.section = b.sectionFor(pno)
}

func (b *passageBuilder) currentLen() int {
	n := 0
	for _, p := range b.parts {
		n += len(p)
	}
	if len(b.parts) > 1 {
		n += len(b.parts) - 1
	}
	return n
}

func (b *passageBuilder) flush() {
	if len(b.parts) == 0 || b.start == 0 {
		b.reset()
		return
	}
	txt := strings.TrimSpace(strings.Join(b.parts, "\n"))
	if txt != "" {
		b.passages = append(b.passages, Passage{
			PageStart:   b.start,
			PageEnd:     b.end,
			SectionPath: dedupeAdjacent(b.section),
			Text:        txt,
		})
	}
	b.reset()
}

func (b *passageBuilder) reset() {
	b.parts = nil
	b.start = 0
	b.end = 0
	b.section = []string{rootSection}
}

func overlapTail(prev string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	if len(prev) > overlap {
		prev = prev[len(prev)-overlap:]
		// Do not cut a multi-byte rune in half.
		for len(prev) > 0 && !utf8.RuneStart(prev[0]) {
			prev = prev[1:]
		}
	}
	return strings.TrimSpace(prev)
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
