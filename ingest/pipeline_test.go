package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sahilrangra/ayur-llm/storage"
	badgerstore "github.com/sahilrangra/ayur-llm/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	results map[string]*ExtractResult
	err     error
}

func (f *fakeExtractor) Extract(path string) (*ExtractResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	res, ok := f.results[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("unexpected path %s", path)
	}
	return res, nil
}

func fakeResult(pages ...string) *ExtractResult {
	res := &ExtractResult{Meta: map[string]string{}}
	for i, text := range pages {
		res.Pages = append(res.Pages, PageText{PageNum: i + 1, Text: text})
	}
	return res
}

func newTestPipeline(t *testing.T, extractor Extractor) (*Pipeline, storage.DocumentRepository, storage.ChunkRepository) {
	t.Helper()

	docs, chunks, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunks.Close()
		docs.Close()
		backend.Close()
	})

	p, err := NewPipeline(docs, chunks, WithExtractor(extractor), WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(p.Release)

	return p, docs, chunks
}

func writeTempPDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func TestNewPipelineValidation(t *testing.T) {
	docs, chunks, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewPipeline(nil, chunks)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewPipeline(docs, nil)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewPipeline(docs, chunks, WithExtractor(nil))
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestIngestDirPersistsDocumentsAndChunks(t *testing.T) {
	body := strings.Repeat("Classical ayurvedic pharmacology text. ", 4)
	extractor := &fakeExtractor{results: map[string]*ExtractResult{
		"charaka_vol1.pdf": fakeResult(
			"INTRODUCTION\n"+body,
			body+"\n"+body,
		),
	}}

	p, docs, chunks := newTestPipeline(t, extractor)
	dir := writeTempPDFs(t, "charaka_vol1.pdf")

	manifest, err := p.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, manifest.Docs, 1)

	report := manifest.Docs[0]
	assert.Empty(t, report.Err)
	assert.Equal(t, "charaka_vol1.pdf", report.FileName)
	assert.Equal(t, 2, report.PageCount)
	assert.Equal(t, 2, report.KeptPages)
	assert.Greater(t, report.ChunkCount, 0)

	ctx := context.Background()
	doc, err := docs.GetDocument(ctx, report.DocID)
	require.NoError(t, err)
	assert.Equal(t, report.ChunkCount, doc.ChunkCount)

	stored, err := chunks.GetChunksByDoc(ctx, report.DocID)
	require.NoError(t, err)
	assert.Len(t, stored, report.ChunkCount)
	for _, c := range stored {
		assert.Equal(t, doc.Source, c.Source)
		assert.NotEmpty(t, c.Text)
		assert.GreaterOrEqual(t, c.PageStart, 1)
	}
}

func TestIngestDirDropsTinyPages(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*ExtractResult{
		"doc.pdf": fakeResult(
			"tiny",
			strings.Repeat("A real page with enough text to keep around. ", 3),
		),
	}}

	p, _, _ := newTestPipeline(t, extractor)
	dir := writeTempPDFs(t, "doc.pdf")

	manifest, err := p.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, manifest.Docs, 1)
	assert.Equal(t, 2, manifest.Docs[0].PageCount)
	assert.Equal(t, 1, manifest.Docs[0].KeptPages)
}

func TestIngestDirRecordsPerFileErrors(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]*ExtractResult{
		"empty.pdf": fakeResult("tiny"),
	}}

	p, _, _ := newTestPipeline(t, extractor)
	dir := writeTempPDFs(t, "empty.pdf")

	manifest, err := p.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, manifest.Docs, 1)
	assert.Contains(t, manifest.Docs[0].Err, "no usable pages")
}

func TestIngestDirNoInputs(t *testing.T) {
	p, _, _ := newTestPipeline(t, &fakeExtractor{})

	_, err := p.IngestDir(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestExportJSONL(t *testing.T) {
	body := strings.Repeat("WHO benchmarks for practice in Ayurveda. ", 4)
	extractor := &fakeExtractor{results: map[string]*ExtractResult{
		"who_benchmarks.pdf": fakeResult("BENCHMARKS\n" + body),
	}}

	p, docs, chunks := newTestPipeline(t, extractor)
	dir := writeTempPDFs(t, "who_benchmarks.pdf")

	ctx := context.Background()
	manifest, err := p.IngestDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, manifest.Docs, 1)

	outDir := t.TempDir()
	require.NoError(t, ExportJSONL(ctx, docs, chunks, outDir))

	jsonlPath := filepath.Join(outDir, "jsonl", manifest.Docs[0].DocID+".jsonl")
	data, err := os.ReadFile(jsonlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chunk_id"`)
	assert.Contains(t, string(data), manifest.Docs[0].DocID)

	_, err = os.Stat(filepath.Join(outDir, "manifests", "docs_manifest.json"))
	assert.NoError(t, err)
}
