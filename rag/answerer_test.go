package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/sahilrangra/ayur-llm/ai/mock"
	"github.com/sahilrangra/ayur-llm/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRetriever struct {
	hits    []index.Hit
	err     error
	lastReq index.QueryRequest
}

func (s *stubRetriever) Query(ctx context.Context, req index.QueryRequest) ([]index.Hit, error) {
	s.lastReq = req
	return s.hits, s.err
}

func sampleHit(chunkID string) index.Hit {
	return index.Hit{
		ChunkID:    chunkID,
		DocID:      "who_doc",
		Source:     "WHO",
		Title:      "Strategy",
		FileName:   "who.pdf",
		PageStart:  3,
		PageEnd:    4,
		Section:    "Document > Introduction",
		Tags:       "policy",
		Text:       "member states endorsed the strategy",
		Similarity: 0.91,
	}
}

func newTestAnswerer(t *testing.T, retriever Retriever) (*Answerer, *mock.MockAnswerGenerator) {
	t.Helper()
	generator := mock.NewMockAnswerGenerator()
	a, err := NewAnswerer(mock.NewMockEmbedder(), generator, retriever)
	require.NoError(t, err)
	return a, generator
}

func TestNewAnswererValidation(t *testing.T) {
	retriever := &stubRetriever{}
	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockAnswerGenerator()

	_, err := NewAnswerer(nil, generator, retriever)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewAnswerer(embedder, nil, retriever)
	assert.ErrorIs(t, err, ErrGeneratorRequired)

	_, err = NewAnswerer(embedder, generator, nil)
	assert.ErrorIs(t, err, ErrRetrieverRequired)
}

func TestAskRejectsShortQuestion(t *testing.T) {
	a, _ := newTestAnswerer(t, &stubRetriever{})

	_, err := a.Ask(context.Background(), Request{Question: " x "})
	assert.ErrorIs(t, err, ErrQuestionTooShort)
}

func TestAskDefaultsAndClampsTopK(t *testing.T) {
	retriever := &stubRetriever{}
	a, _ := newTestAnswerer(t, retriever)

	_, err := a.Ask(context.Background(), Request{Question: "what are doshas"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, retriever.lastReq.TopK)

	_, err = a.Ask(context.Background(), Request{Question: "what are doshas", TopK: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxTopK, retriever.lastReq.TopK)
}

func TestAskPassesFilters(t *testing.T) {
	retriever := &stubRetriever{}
	a, _ := newTestAnswerer(t, retriever)

	_, err := a.Ask(context.Background(), Request{
		Question:     "panchakarma procedures",
		TopK:         5,
		SourceFilter: "CLASSICAL",
		DocIDs:       []string{"charaka"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CLASSICAL", retriever.lastReq.Source)
	assert.Equal(t, []string{"charaka"}, retriever.lastReq.DocIDs)
	assert.NotEmpty(t, retriever.lastReq.Embedding)
}

func TestAskNoHitsReturnsNoInformation(t *testing.T) {
	a, generator := newTestAnswerer(t, &stubRetriever{})

	resp, err := a.Ask(context.Background(), Request{Question: "something obscure"})
	require.NoError(t, err)

	assert.Equal(t, ai.NoInformationAnswer, resp.Answer)
	assert.Empty(t, resp.Citations)
	assert.Equal(t, 0, resp.RetrievedCount)
	assert.Equal(t, 0, generator.CallCount())
}

func TestAskBuildsContextsAndCitations(t *testing.T) {
	retriever := &stubRetriever{hits: []index.Hit{sampleHit("who_doc::c00000"), sampleHit("who_doc::c00001")}}
	a, generator := newTestAnswerer(t, retriever)

	resp, err := a.Ask(context.Background(), Request{Question: "what did member states endorse", Strict: true})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Answer)
	assert.Equal(t, 2, resp.RetrievedCount)
	require.Len(t, resp.Citations, 2)
	assert.Equal(t, "who_doc::c00000", resp.Citations[0].ChunkID)
	assert.Equal(t, "WHO", resp.Citations[0].Source)
	assert.Equal(t, 3, resp.Citations[0].PageStart)

	require.Len(t, generator.LastContexts(), 2)
	assert.Equal(t, "member states endorsed the strategy", generator.LastContexts()[0].Text)
	assert.True(t, generator.LastStrict())
}

func TestAskPropagatesGeneratorError(t *testing.T) {
	retriever := &stubRetriever{hits: []index.Hit{sampleHit("c1")}}
	a, generator := newTestAnswerer(t, retriever)

	boom := errors.New("model unavailable")
	generator.GenerateAnswerFunc = func(ctx context.Context, q string, contexts []ai.Context, strict bool) (string, error) {
		return "", boom
	}

	_, err := a.Ask(context.Background(), Request{Question: "anything at all"})
	assert.ErrorIs(t, err, boom)
}

func TestAskPropagatesRetrieverError(t *testing.T) {
	boom := errors.New("index offline")
	a, _ := newTestAnswerer(t, &stubRetriever{err: boom})

	_, err := a.Ask(context.Background(), Request{Question: "anything at all"})
	assert.ErrorIs(t, err, boom)
}
