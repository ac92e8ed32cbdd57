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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/sahilrangra/ayur-llm/core"
)

// CollectionName is the single collection the corpus is indexed under.
const CollectionName = "ayurveda_docs"

// Embeddings are always computed by the caller, never by the store.
var errNoInternalEmbedding = errors.New("store does not embed")

func noEmbeddingFunc(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoInternalEmbedding
}

// Entry is one chunk plus its embedding, ready to be indexed.
type Entry struct {
	Chunk     *core.Chunk
	Embedding []float32
}

// Hit is one similarity match. Similarity is cosine similarity in
// [-1, 1]; Distance is 1 - similarity.
type Hit struct {
	ChunkID    string
	DocID      string
	Source     string
	Title      string
	FileName   string
	PageStart  int
	PageEnd    int
	Section    string
	Tags       string
	Text       string
	Similarity float32
}

// Distance returns the cosine distance of the hit.
func (h *Hit) Distance() float32 {
	return 1 - h.Similarity
}

// QueryRequest selects the nearest chunks for an embedding, optionally
// restricted to one source label or a set of documents.
type QueryRequest struct {
	Embedding []float32
	TopK      int
	Source    string
	DocIDs    []string
}

// Store is a persistent vector index over chunk embeddings.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	path       string
}

// Open opens (or creates) the vector index at path. An empty path opens
// an in-memory index, used by tests.
func Open(path string) (*Store, error) {
	var (
		db  *chromem.DB
		err error
	)
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open vector index at %s: %w", path, err)
		}
	}

	collection, err := db.GetOrCreateCollection(CollectionName, nil, noEmbeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", CollectionName, err)
	}

	return &Store{db: db, collection: collection, path: path}, nil
}

// Rebuild drops and recreates the collection. Used for clean reindexing.
func (s *Store) Rebuild() error {
	if err := s.db.DeleteCollection(CollectionName); err != nil {
		return fmt.Errorf("delete collection %s: %w", CollectionName, err)
	}
	collection, err := s.db.GetOrCreateCollection(CollectionName, nil, noEmbeddingFunc)
	if err != nil {
		return fmt.Errorf("recreate collection %s: %w", CollectionName, err)
	}
	s.collection = collection
	return nil
}

// Add indexes the given entries.
func (s *Store) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, chromem.Document{
			ID:        e.Chunk.ChunkID,
			Metadata:  chunkMetadata(e.Chunk),
			Embedding: e.Embedding,
			Content:   e.Chunk.Text,
		})
	}
	return s.collection.AddDocuments(ctx, docs, 1)
}

// Query returns up to TopK hits for the request embedding. Document
// filters cannot be pushed into the collection, so the store over-fetches
// and filters the results.
func (s *Store) Query(ctx context.Context, req QueryRequest) ([]Hit, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}

	topK := req.TopK
	if topK < 1 {
		topK = 1
	}

	var where map[string]string
	if req.Source != "" {
		where = map[string]string{"source": req.Source}
	}

	fetch := topK
	if len(req.DocIDs) > 0 {
		fetch = topK * 10
	}
	if fetch > count {
		fetch = count
	}

	results, err := s.collection.QueryEmbedding(ctx, req.Embedding, fetch, where, nil)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(req.DocIDs))
	for _, id := range req.DocIDs {
		wanted[id] = true
	}

	hits := make([]Hit, 0, topK)
	for _, res := range results {
		if strings.TrimSpace(res.Content) == "" {
			continue
		}
		hit := hitFromResult(res)
		if len(wanted) > 0 && !wanted[hit.DocID] {
			continue
		}
		hits = append(hits, hit)
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Path returns the on-disk location of the index, empty for in-memory
// stores.
func (s *Store) Path() string {
	return s.path
}

// Collections lists the collection names present in the index.
func (s *Store) Collections() []string {
	var names []string
	for name := range s.db.ListCollections() {
		names = append(names, name)
	}
	return names
}

func chunkMetadata(c *core.Chunk) map[string]string {
	return map[string]string{
		"doc_id":     c.DocID,
		"file_name":  c.FileName,
		"title":      c.Title,
		"source":     string(c.Source),
		"page_start": strconv.Itoa(c.PageStart),
		"page_end":   strconv.Itoa(c.PageEnd),
		"section":    c.Section(),
		"tags":       strings.Join(c.Tags, ","),
	}
}

func hitFromResult(res chromem.Result) Hit {
	pageStart, _ := strconv.Atoi(res.Metadata["page_start"])
	pageEnd, _ := strconv.Atoi(res.Metadata["page_end"])
	return Hit{
		ChunkID:    res.ID,
		DocID:      res.Metadata["doc_id"],
		Source:     res.Metadata["source"],
		Title:      res.Metadata["title"],
		FileName:   res.Metadata["file_name"],
		PageStart:  pageStart,
		PageEnd:    pageEnd,
		Section:    res.Metadata["section"],
		Tags:       res.Metadata["tags"],
		Text:       res.Content,
		Similarity: res.Similarity,
	}
}
