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

package index

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/sahilrangra/ayur-llm/core"
	"github.com/sahilrangra/ayur-llm/storage"
)

// BuildConfig controls batch embedding during index builds.
type BuildConfig struct {
	// BatchSize is the number of chunks embedded per request.
	BatchSize int

	// MaxAttempts, BaseDelay and MaxDelay configure retry of failed
	// embedding batches.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultBuildConfig returns the production build settings.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		BatchSize:   96,
		MaxAttempts: 6,
		BaseDelay:   time.Second,
		MaxDelay:    20 * time.Second,
	}
}

// BuildReport summarizes an index build.
type BuildReport struct {
	TotalChunks   int
	IndexedChunks int
	SkippedChunks int
	Batches       int
	Elapsed       time.Duration
}

// Builder embeds the chunk corpus and writes it into a Store.
type Builder struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	store    *Store
	cfg      BuildConfig
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuildConfig overrides the build settings.
func WithBuildConfig(cfg BuildConfig) BuilderOption {
	return func(b *Builder) {
		if cfg.BatchSize < 1 {
			cfg.BatchSize = 1
		}
		if cfg.MaxAttempts < 1 {
			cfg.MaxAttempts = 1
		}
		b.cfg = cfg
	}
}

// WithBuilderLogger sets a custom logger.
// Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// NewBuilder creates an index builder over the chunk repository.
func NewBuilder(chunks storage.ChunkRepository, embedder ai.Embedder, store *Store, opts ...BuilderOption) (*Builder, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	b := &Builder{
		chunks:   chunks,
		embedder: embedder,
		store:    store,
		cfg:      DefaultBuildConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build embeds every stored chunk and indexes it. When rebuild is true
// the collection is dropped first, giving a clean index.
func (b *Builder) Build(ctx context.Context, rebuild bool) (*BuildReport, error) {
	logger := b.logger.With("component", "index")
	start := time.Now()

	if rebuild {
		if err := b.store.Rebuild(); err != nil {
			return nil, err
		}
		logger.Info("collection rebuilt", "collection", CollectionName)
	}

	report := &BuildReport{}
	batch := make([]*core.Chunk, 0, b.cfg.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := b.indexBatch(ctx, batch); err != nil {
			return err
		}
		report.IndexedChunks += len(batch)
		report.Batches++
		batch = batch[:0]
		return nil
	}

	err := b.chunks.IterateChunks(ctx, func(c *core.Chunk) error {
		report.TotalChunks++
		if strings.TrimSpace(c.Text) == "" || c.ChunkID == "" {
			report.SkippedChunks++
			return nil
		}
		batch = append(batch, cloneChunk(c))
		if len(batch) == b.cfg.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	logger.Info("index build complete",
		"total", report.TotalChunks,
		"indexed", report.IndexedChunks,
		"skipped", report.SkippedChunks,
		"batches", report.Batches,
		"elapsed", report.Elapsed)
	return report, nil
}

func (b *Builder) indexBatch(ctx context.Context, batch []*core.Chunk) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = b.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, b.cfg.MaxAttempts, b.cfg.BaseDelay, b.cfg.MaxDelay)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return ErrEmbeddingCountMismatch
	}

	entries := make([]Entry, len(batch))
	for i, c := range batch {
		entries[i] = Entry{Chunk: c, Embedding: vectors[i]}
	}
	return b.store.Add(ctx, entries)
}

// cloneChunk copies a chunk so batched entries survive iterator reuse.
func cloneChunk(c *core.Chunk) *core.Chunk {
	dup := *c
	return &dup
}
