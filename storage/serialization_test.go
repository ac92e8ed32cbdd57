package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/sahilrangra/ayur-llm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRoundTrip(t *testing.T) {
	chunk := &core.Chunk{
		ChunkID:     "doc_1::c00002",
		DocID:       "doc_1",
		Source:      core.SourceCCRAS,
		Title:       "The Science of Life",
		FileName:    "science_of_life.pdf",
		PageStart:   5,
		PageEnd:     7,
		SectionPath: []string{"Document", "Preface"},
		Tags:        []string{"classical"},
		Text:        "Passage text with unicode: • and ॐ",
		InsertedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalChunk(chunk)
	require.NoError(t, err)

	got, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestChunkJSONFieldNames(t *testing.T) {
	// The badger values double as the JSONL interchange format, so the
	// field names are part of the contract.
	data, err := MarshalChunk(&core.Chunk{ChunkID: "d::c00000", DocID: "d", PageStart: 1, PageEnd: 1, Text: "x"})
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{`"chunk_id"`, `"doc_id"`, `"page_start"`, `"page_end"`, `"section_path"`, `"text"`} {
		assert.Contains(t, s, key)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := UnmarshalDocument([]byte("{not json"))
	assert.True(t, errors.Is(err, ErrSerializationFailed))

	_, err = UnmarshalChunk([]byte("{not json"))
	assert.True(t, errors.Is(err, ErrSerializationFailed))
}
