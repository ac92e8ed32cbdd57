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
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
	linebreaksRe = regexp.MustCompile(`\n{3,}`)
	hyphenRe     = regexp.MustCompile(`(\w)-\n(\w)`)
)

// PageText is the cleaned text of a single page. Pages are 1-based.
type PageText struct {
	PageNum int
	Text    string
}

// ExtractResult holds everything pulled out of one PDF.
type ExtractResult struct {
	Path       string
	TitleGuess string
	Pages      []PageText
	Meta       map[string]string
	Notes      []string
}

// Extractor pulls page text out of a PDF file.
type Extractor interface {
	Extract(path string) (*ExtractResult, error)
}

// NewExtractor returns the default PDF extractor.
func NewExtractor() Extractor {
	return &pdfExtractor{}
}

type pdfExtractor struct{}

func (e *pdfExtractor) Extract(path string) (*ExtractResult, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	res := &ExtractResult{
		Path: path,
		Meta: map[string]string{},
	}

	readMetadata(reader, res)

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		text, pageErr := extractPage(reader, i)
		if pageErr != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("page_error: page %d: %v", i, pageErr))
			text = ""
		}
		res.Pages = append(res.Pages, PageText{PageNum: i, Text: cleanText(text)})
	}

	res.TitleGuess = guessTitle(res, path)
	return res, nil
}

// readMetadata copies the PDF Info dictionary into res.Meta. The parser
// can panic on malformed trailers, so the whole read is recovered.
func readMetadata(reader *pdf.Reader, res *ExtractResult) {
	defer func() {
		if r := recover(); r != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("metadata_error: %v", r))
		}
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}
	for _, key := range info.Keys() {
		v := info.Key(key)
		if v.Kind() == pdf.String && v.RawString() != "" {
			res.Meta[key] = v.RawString()
		}
	}
}

func extractPage(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic extracting page: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// guessTitle prefers the metadata title, then the first non-empty line
// of page one, then the file stem.
func guessTitle(res *ExtractResult, path string) string {
	if t := strings.TrimSpace(res.Meta["Title"]); t != "" {
		return t
	}
	if len(res.Pages) > 0 {
		for _, ln := range strings.Split(res.Pages[0].Text, "\n") {
			if s := strings.TrimSpace(ln); s != "" {
				return s
			}
		}
	}
	return fileStem(path)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// cleanText normalizes whitespace while keeping line breaks, which the
// heading heuristics depend on, and rejoins hyphenated line breaks like
// "man-\nagement".
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r", "\n")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = linebreaksRe.ReplaceAllString(text, "\n\n")
	text = hyphenRe.ReplaceAllString(text, "$1$2")
	return strings.TrimSpace(text)
}
