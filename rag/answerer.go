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

package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/sahilrangra/ayur-llm/core"
	"github.com/sahilrangra/ayur-llm/index"
)

const (
	// DefaultTopK is used when a request does not set TopK.
	DefaultTopK = 8

	// MaxTopK caps how many chunks one question may retrieve.
	MaxTopK = 50

	minQuestionLen = 2
)

// Retriever finds the nearest indexed chunks for an embedding.
// *index.Store is the production implementation.
type Retriever interface {
	Query(ctx context.Context, req index.QueryRequest) ([]index.Hit, error)
}

// Request is one question against the corpus.
type Request struct {
	Question     string   `json:"question"`
	TopK         int      `json:"top_k"`
	DocIDs       []string `json:"doc_ids,omitempty"`
	SourceFilter string   `json:"source_filter,omitempty"`
	Strict       bool     `json:"strict"`
}

// Response is a grounded answer with its citations.
type Response struct {
	Answer         string          `json:"answer"`
	Citations      []core.Citation `json:"citations"`
	RetrievedCount int             `json:"retrieved_count"`
}

// Answerer wires embedding, retrieval and generation into one ask path.
type Answerer struct {
	embedder  ai.Embedder
	generator ai.AnswerGenerator
	retriever Retriever
	logger    *slog.Logger
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AnswererOption {
	return func(a *Answerer) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// NewAnswerer creates an Answerer over the given services.
func NewAnswerer(embedder ai.Embedder, generator ai.AnswerGenerator, retriever Retriever, opts ...AnswererOption) (*Answerer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	a := &Answerer{
		embedder:  embedder,
		generator: generator,
		retriever: retriever,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Ask answers a question using only retrieved chunks. An empty
// retrieval short-circuits to the fixed no-information sentence.
func (a *Answerer) Ask(ctx context.Context, req Request) (*Response, error) {
	question := strings.TrimSpace(req.Question)
	if len(question) < minQuestionLen {
		return nil, ErrQuestionTooShort
	}

	topK := req.TopK
	if topK < 1 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	hits, err := a.Retrieve(ctx, question, topK, req.SourceFilter, req.DocIDs)
	if err != nil {
		return nil, err
	}

	if len(hits) == 0 {
		return &Response{
			Answer:    ai.NoInformationAnswer,
			Citations: []core.Citation{},
		}, nil
	}

	contexts := make([]ai.Context, len(hits))
	citations := make([]core.Citation, len(hits))
	for i, hit := range hits {
		contexts[i] = ai.Context{
			Source:    hit.Source,
			Title:     hit.Title,
			FileName:  hit.FileName,
			Section:   hit.Section,
			PageStart: hit.PageStart,
			PageEnd:   hit.PageEnd,
			Text:      hit.Text,
		}
		citations[i] = core.Citation{
			Source:    hit.Source,
			Title:     hit.Title,
			FileName:  hit.FileName,
			PageStart: hit.PageStart,
			PageEnd:   hit.PageEnd,
			Section:   hit.Section,
			Tags:      hit.Tags,
			ChunkID:   hit.ChunkID,
		}
	}

	answer, err := a.generator.GenerateAnswer(ctx, question, contexts, req.Strict)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("question answered",
		"question_len", len(question),
		"top_k", topK,
		"retrieved", len(hits),
		"strict", req.Strict)

	return &Response{
		Answer:         strings.TrimSpace(answer),
		Citations:      citations,
		RetrievedCount: len(hits),
	}, nil
}

// Retrieve embeds the question and returns the nearest chunks without
// generating an answer.
func (a *Answerer) Retrieve(ctx context.Context, question string, topK int, sourceFilter string, docIDs []string) ([]index.Hit, error) {
	embedding, err := a.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}
	return a.retriever.Query(ctx, index.QueryRequest{
		Embedding: embedding,
		TopK:      topK,
		Source:    sourceFilter,
		DocIDs:    docIDs,
	})
}
