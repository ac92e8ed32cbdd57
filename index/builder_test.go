package index

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sahilrangra/ayur-llm/ai/mock"
	"github.com/sahilrangra/ayur-llm/core"
	badgerstore "github.com/sahilrangra/ayur-llm/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilrangra/ayur-llm/storage"
)

func newBuilderFixture(t *testing.T) (storage.ChunkRepository, *mock.MockEmbedder, *Store) {
	t.Helper()

	_, chunks, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunks.Close()
		backend.Close()
	})

	store, err := Open("")
	require.NoError(t, err)

	return chunks, mock.NewMockEmbedder(), store
}

func seedChunks(t *testing.T, chunks storage.ChunkRepository, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		c := indexedChunk("doc", i, core.SourceWHO, fmt.Sprintf("chunk text number %d", i))
		require.NoError(t, chunks.PutChunks(ctx, c))
	}
}

func TestNewBuilderValidation(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)

	_, err := NewBuilder(nil, embedder, store)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewBuilder(chunks, nil, store)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewBuilder(chunks, embedder, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestBuildIndexesAllChunks(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)
	seedChunks(t, chunks, 7)

	builder, err := NewBuilder(chunks, embedder, store,
		WithBuildConfig(BuildConfig{BatchSize: 3, MaxAttempts: 1, BaseDelay: time.Millisecond}))
	require.NoError(t, err)

	report, err := builder.Build(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 7, report.TotalChunks)
	assert.Equal(t, 7, report.IndexedChunks)
	assert.Equal(t, 0, report.SkippedChunks)
	assert.Equal(t, 3, report.Batches)
	assert.Equal(t, 7, store.Count())
}

func TestBuildRebuildClearsIndex(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)
	seedChunks(t, chunks, 2)

	builder, err := NewBuilder(chunks, embedder, store)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = builder.Build(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 2, store.Count())

	// A rebuild drops the collection, so a second pass does not double
	// the index.
	report, err := builder.Build(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.IndexedChunks)
	assert.Equal(t, 2, store.Count())
}

func TestBuildRetriesEmbeddingFailures(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)
	seedChunks(t, chunks, 2)

	failures := 2
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("rate limited")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0, 0}
		}
		return out, nil
	}

	builder, err := NewBuilder(chunks, embedder, store,
		WithBuildConfig(BuildConfig{BatchSize: 96, MaxAttempts: 6, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}))
	require.NoError(t, err)

	report, err := builder.Build(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.IndexedChunks)
	assert.Equal(t, 0, failures)
}

func TestBuildFailsAfterMaxAttempts(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)
	seedChunks(t, chunks, 1)

	boom := errors.New("embedding backend down")
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	builder, err := NewBuilder(chunks, embedder, store,
		WithBuildConfig(BuildConfig{BatchSize: 96, MaxAttempts: 2, BaseDelay: time.Millisecond}))
	require.NoError(t, err)

	_, err = builder.Build(context.Background(), false)
	assert.ErrorIs(t, err, boom)
}

func TestBuildEmbeddingCountMismatch(t *testing.T) {
	chunks, embedder, store := newBuilderFixture(t)
	seedChunks(t, chunks, 2)

	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	builder, err := NewBuilder(chunks, embedder, store,
		WithBuildConfig(BuildConfig{BatchSize: 96, MaxAttempts: 1, BaseDelay: time.Millisecond}))
	require.NoError(t, err)

	_, err = builder.Build(context.Background(), false)
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}
