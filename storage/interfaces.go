package storage

import (
	"context"

	"github.com/sahilrangra/ayur-llm/core"
)

// DocumentRepository provides operations for managing document records.
type DocumentRepository interface {
	// PutDocument inserts or updates a document record.
	// Sets InsertedAt if not already set and always refreshes UpdatedAt.
	PutDocument(ctx context.Context, doc *core.Document) error

	// GetDocument retrieves a document by its ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, docID string) (*core.Document, error)

	// ListDocuments retrieves all document records, ordered by doc ID.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// DeleteDocument removes a document record by ID.
	// Returns ErrNotFound if the document doesn't exist.
	// Chunks are managed separately; see ChunkRepository.DeleteChunksByDoc.
	DeleteDocument(ctx context.Context, docID string) error

	// Close releases resources held by the repository.
	Close() error
}

// ChunkRepository provides operations for managing chunk records.
type ChunkRepository interface {
	// PutChunks inserts or updates chunk records (upsert by chunk ID).
	// Sets InsertedAt if not already set and always refreshes UpdatedAt.
	// Also maintains the document-to-chunk index.
	PutChunks(ctx context.Context, chunks ...*core.Chunk) error

	// GetChunk retrieves a single chunk by its ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, chunkID string) (*core.Chunk, error)

	// GetChunksByDoc retrieves all chunks for a document, in document order.
	GetChunksByDoc(ctx context.Context, docID string) ([]*core.Chunk, error)

	// IterateChunks calls fn for every chunk in key order.
	// Iteration stops early if fn returns an error, which is propagated.
	IterateChunks(ctx context.Context, fn func(*core.Chunk) error) error

	// CountChunks returns the total number of chunk records.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunksByDoc removes all chunks belonging to a document,
	// including their index entries. Deleting a document with no chunks
	// is not an error.
	DeleteChunksByDoc(ctx context.Context, docID string) error

	// Close releases resources held by the repository.
	Close() error
}
