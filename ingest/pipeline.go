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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sahilrangra/ayur-llm/core"
	"github.com/sahilrangra/ayur-llm/storage"
)

// Pipeline orchestrates parsing, chunking, cleaning and persisting
// source PDFs. Files are processed concurrently on a worker pool.
type Pipeline struct {
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	extractor Extractor
	pool      *ants.Pool
	cfg       Config
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent PDF parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithExtractor overrides the PDF extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) error {
		if e == nil {
			return ErrExtractorRequired
		}
		p.extractor = e
		return nil
	}
}

// WithConfig overrides the chunking configuration.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.cfg = cfg
		return nil
	}
}

// NewPipeline creates an ingest pipeline over the given repositories.
func NewPipeline(
	documents storage.DocumentRepository,
	chunks storage.ChunkRepository,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		chunks:    chunks,
		extractor: NewExtractor(),
		pool:      pool,
		cfg:       DefaultConfig(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Manifest summarizes one ingest run.
type Manifest struct {
	CreatedAt time.Time   `json:"created_at"`
	InputDir  string      `json:"input_dir"`
	DocCount  int         `json:"doc_count"`
	Docs      []DocReport `json:"docs"`
}

// DocReport summarizes one ingested document.
type DocReport struct {
	DocID      string            `json:"doc_id"`
	Title      string            `json:"title"`
	Source     core.Source       `json:"source"`
	FileName   string            `json:"file_name"`
	PageCount  int               `json:"page_count"`
	KeptPages  int               `json:"kept_pages"`
	ChunkCount int               `json:"chunk_count"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
	Err        string            `json:"error,omitempty"`
}

// IngestDir parses every *.pdf in dir and persists the resulting
// documents and chunks. Per-file failures are recorded in the manifest
// and logged, they do not abort the run.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*Manifest, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, dir)
	}
	sort.Strings(paths)

	manifest := &Manifest{
		CreatedAt: time.Now().UTC(),
		InputDir:  dir,
		DocCount:  len(paths),
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		reports = make([]DocReport, len(paths))
	)
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			report := p.ingestOne(ctx, path)
			mu.Lock()
			reports[i] = report
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			reports[i] = DocReport{FileName: filepath.Base(path), Err: submitErr.Error()}
		}
	}
	wg.Wait()

	manifest.Docs = reports
	return manifest, nil
}

// IngestFile parses and persists a single PDF.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*DocReport, error) {
	report := p.ingestOne(ctx, path)
	if report.Err != "" {
		return &report, fmt.Errorf("ingest %s: %s", path, report.Err)
	}
	return &report, nil
}

func (p *Pipeline) ingestOne(ctx context.Context, path string) DocReport {
	fileName := filepath.Base(path)
	logger := p.logger.With("component", "ingest", "file", fileName)

	res, err := p.extractor.Extract(path)
	if err != nil {
		logger.Error("extraction failed", "err", err)
		return DocReport{FileName: fileName, Err: err.Error()}
	}

	docID := core.DocIDFromPath(path)
	doc, chunks := p.buildRecords(docID, fileName, res)
	if doc == nil {
		logger.Warn("no usable pages, skipping")
		return DocReport{DocID: docID, FileName: fileName, Err: ErrNoPages.Error()}
	}

	if err := p.chunks.PutChunks(ctx, chunks...); err != nil {
		logger.Error("persisting chunks failed", "err", err)
		return DocReport{DocID: docID, FileName: fileName, Err: err.Error()}
	}
	if err := p.documents.PutDocument(ctx, doc); err != nil {
		logger.Error("persisting document failed", "err", err)
		return DocReport{DocID: docID, FileName: fileName, Err: err.Error()}
	}

	logger.Info("ingested document",
		"doc_id", doc.DocID,
		"source", doc.Source,
		"pages", doc.PageCount,
		"kept_pages", doc.KeptPages,
		"chunks", doc.ChunkCount)

	return DocReport{
		DocID:      doc.DocID,
		Title:      doc.Title,
		Source:     doc.Source,
		FileName:   fileName,
		PageCount:  doc.PageCount,
		KeptPages:  doc.KeptPages,
		ChunkCount: doc.ChunkCount,
		Metadata:   res.Meta,
		Notes:      doc.Notes,
	}
}

// buildRecords converts an extraction result into a document record and
// its chunk records. Returns a nil document when no page survives the
// tiny-page filter.
func (p *Pipeline) buildRecords(docID, fileName string, res *ExtractResult) (*core.Document, []*core.Chunk) {
	kept := make([]PageText, 0, len(res.Pages))
	pagesText := make(map[int]string, len(res.Pages))
	for _, page := range res.Pages {
		if len(strings.TrimSpace(page.Text)) < p.cfg.DropTinyPageChars {
			continue
		}
		kept = append(kept, page)
		pagesText[page.PageNum] = page.Text
	}
	if len(kept) == 0 {
		return nil, nil
	}

	sections := BuildSectionPaths(pagesText, p.cfg.MinHeadingLen, p.cfg.MaxHeadingLen)
	passages := BuildPassages(kept, sections, p.cfg)
	if len(passages) == 0 {
		return nil, nil
	}

	sample := passages[0].Text
	title := ChooseBetterTitle(fileName, strings.TrimSpace(res.TitleGuess), sample)
	source := InferSource(fileName, title, sample)
	tags := AutoTags(title)

	chunks := make([]*core.Chunk, 0, len(passages))
	for _, passage := range passages {
		text := CleanString(passage.Text)
		if text == "" {
			continue
		}
		chunks = append(chunks, &core.Chunk{
			ChunkID:     core.ChunkID(docID, len(chunks)),
			DocID:       docID,
			Source:      source,
			Title:       title,
			FileName:    fileName,
			PageStart:   passage.PageStart,
			PageEnd:     passage.PageEnd,
			SectionPath: CleanSectionPath(passage.SectionPath),
			Tags:        tags,
			Text:        text,
		})
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	doc := &core.Document{
		DocID:      docID,
		Title:      title,
		Source:     source,
		FileName:   fileName,
		PageCount:  len(res.Pages),
		KeptPages:  len(kept),
		ChunkCount: len(chunks),
		Notes:      res.Notes,
	}
	return doc, chunks
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
