package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahilrangra/ayur-llm/core"
	"github.com/sahilrangra/ayur-llm/storage"
)

// ExportJSONL writes the persisted corpus under outDir as one JSONL
// file per document plus a manifest. Layout:
//
//	outDir/jsonl/<doc_id>.jsonl
//	outDir/manifests/docs_manifest.json
func ExportJSONL(ctx context.Context, documents storage.DocumentRepository, chunks storage.ChunkRepository, outDir string) error {
	jsonlDir := filepath.Join(outDir, "jsonl")
	manifestDir := filepath.Join(outDir, "manifests")
	for _, dir := range []string{jsonlDir, manifestDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	docs, err := documents.ListDocuments(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := exportDoc(ctx, chunks, doc, jsonlDir); err != nil {
			return fmt.Errorf("export %s: %w", doc.DocID, err)
		}
	}

	manifest, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(manifestDir, "docs_manifest.json"), manifest, 0o644)
}

func exportDoc(ctx context.Context, chunks storage.ChunkRepository, doc *core.Document, jsonlDir string) error {
	recs, err := chunks.GetChunksByDoc(ctx, doc.DocID)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(jsonlDir, doc.DocID+".jsonl"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return f.Close()
}
