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

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/sahilrangra/ayur-llm/core"
	"github.com/sahilrangra/ayur-llm/index"
	"github.com/sahilrangra/ayur-llm/rag"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req rag.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.deps.Answerer.Ask(r.Context(), req)
	if err != nil {
		if errors.Is(err, rag.ErrQuestionTooShort) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("ask failed", "err", err)
		writeError(w, http.StatusInternalServerError, "answering failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	VectorDir   string   `json:"vector_dir"`
	Collections []string `json:"collections"`
	Collection  string   `json:"collection"`
	Count       int      `json:"count"`
	EmbedModel  string   `json:"embed_model"`
	ChatModel   string   `json:"chat_model"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		VectorDir:   s.deps.Index.Path(),
		Collections: s.deps.Index.Collections(),
		Collection:  index.CollectionName,
		Count:       s.deps.Index.Count(),
		EmbedModel:  s.deps.EmbedModel,
		ChatModel:   s.deps.ChatModel,
	})
}

type peekResponse struct {
	Count            int            `json:"count"`
	SampleIDs        []string       `json:"sample_ids"`
	SampleMeta       map[string]any `json:"sample_meta"`
	SampleDocPreview string         `json:"sample_doc_preview"`
}

// handlePeek samples one chunk from the corpus store to show what the
// index is built from.
func (s *Server) handlePeek(w http.ResponseWriter, r *http.Request) {
	resp := peekResponse{
		Count:     s.deps.Index.Count(),
		SampleIDs: []string{},
	}

	var sample *core.Chunk
	err := s.deps.Chunks.IterateChunks(r.Context(), func(c *core.Chunk) error {
		sample = c
		return errStopIteration
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		s.logger.Error("peek failed", "err", err)
		writeError(w, http.StatusInternalServerError, "peek failed")
		return
	}

	if sample != nil {
		resp.SampleIDs = []string{sample.ChunkID}
		resp.SampleMeta = map[string]any{
			"doc_id":     sample.DocID,
			"file_name":  sample.FileName,
			"title":      sample.Title,
			"source":     string(sample.Source),
			"page_start": sample.PageStart,
			"page_end":   sample.PageEnd,
			"section":    sample.Section(),
		}
		resp.SampleDocPreview = preview(sample.Text, 300)
	}

	writeJSON(w, http.StatusOK, resp)
}

var errStopIteration = errors.New("stop iteration")

type docEntry struct {
	DocID       string `json:"doc_id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	FileName    string `json:"file_name"`
	DisplayName string `json:"display_name"`
}

type listDocsResponse struct {
	Count int        `json:"count"`
	Docs  []docEntry `json:"docs"`
}

func (s *Server) handleListDocs(w http.ResponseWriter, r *http.Request) {
	docs, err := s.deps.Documents.ListDocuments(r.Context())
	if err != nil {
		s.logger.Error("listing documents failed", "err", err)
		writeError(w, http.StatusInternalServerError, "listing documents failed")
		return
	}

	entries := make([]docEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, docEntry{
			DocID:       doc.DocID,
			Title:       doc.Title,
			Source:      string(doc.Source),
			FileName:    doc.FileName,
			DisplayName: doc.DisplayName(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.FileName < b.FileName
	})

	writeJSON(w, http.StatusOK, listDocsResponse{Count: len(entries), Docs: entries})
}

type debugQueryResponse struct {
	CollectionCount int        `json:"collection_count"`
	QueryLen        int        `json:"query_len"`
	EmbDim          int        `json:"emb_dim"`
	TopK            int        `json:"top_k"`
	SourceFilter    string     `json:"source_filter,omitempty"`
	HitCount        int        `json:"hit_count"`
	FirstDistance   *float32   `json:"first_distance"`
	FirstHit        *index.Hit `json:"first_hit,omitempty"`
	FirstDocPreview string     `json:"first_doc_preview,omitempty"`
}

// handleDebugQuery runs raw retrieval without answer generation, for
// inspecting how the index responds to a query.
func (s *Server) handleDebugQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeError(w, http.StatusBadRequest, "q must be at least 2 characters")
		return
	}

	topK := 5
	if v := r.URL.Query().Get("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid top_k")
			return
		}
		topK = n
	}
	source := r.URL.Query().Get("source")

	embedding, err := s.deps.Embedder.EmbedText(r.Context(), q)
	if err != nil {
		s.logger.Error("debug query embedding failed", "err", err)
		writeError(w, http.StatusInternalServerError, "embedding failed")
		return
	}

	hits, err := s.deps.Index.Query(r.Context(), index.QueryRequest{
		Embedding: embedding,
		TopK:      topK,
		Source:    source,
	})
	if err != nil {
		s.logger.Error("debug query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	resp := debugQueryResponse{
		CollectionCount: s.deps.Index.Count(),
		QueryLen:        len(q),
		EmbDim:          len(embedding),
		TopK:            topK,
		SourceFilter:    source,
		HitCount:        len(hits),
	}
	if len(hits) > 0 {
		first := hits[0]
		dist := first.Distance()
		resp.FirstDistance = &dist
		resp.FirstDocPreview = preview(first.Text, 250)
		first.Text = ""
		resp.FirstHit = &first
	}

	writeJSON(w, http.StatusOK, resp)
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
