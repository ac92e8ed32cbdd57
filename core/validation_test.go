package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc:  &Document{DocID: "doc_1", FileName: "doc.pdf"},
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "missing doc id",
			doc:     &Document{FileName: "doc.pdf"},
			wantErr: ErrEmptyDocID,
		},
		{
			name:    "missing file name",
			doc:     &Document{DocID: "doc_1"},
			wantErr: ErrEmptyFileName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	valid := func() *Chunk {
		return &Chunk{
			ChunkID:   "doc_1::c00000",
			DocID:     "doc_1",
			PageStart: 1,
			PageEnd:   2,
			Text:      "text",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Chunk)
		wantErr error
	}{
		{name: "valid chunk", mutate: func(c *Chunk) {}},
		{name: "missing chunk id", mutate: func(c *Chunk) { c.ChunkID = "" }, wantErr: ErrEmptyChunkID},
		{name: "missing doc id", mutate: func(c *Chunk) { c.DocID = "" }, wantErr: ErrEmptyDocID},
		{name: "missing text", mutate: func(c *Chunk) { c.Text = "" }, wantErr: ErrEmptyText},
		{name: "page start before 1", mutate: func(c *Chunk) { c.PageStart = 0 }, wantErr: ErrInvalidPageRange},
		{name: "page end before start", mutate: func(c *Chunk) { c.PageEnd = 0 }, wantErr: ErrInvalidPageRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := ValidateChunk(c)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChunk) {
				t.Errorf("ValidateChunk() error = %v, want wrapped ErrInvalidChunk", err)
			}
		})
	}

	if err := ValidateChunk(nil); !errors.Is(err, ErrInvalidChunk) {
		t.Errorf("ValidateChunk(nil) error = %v", err)
	}
}
