package badger

// Key prefixes for different data types.
// Document and chunk IDs never contain ':' (slug + hash, and "::cNNNNN"
// uses only alphanumerics, '_' and ':'), so the prefix scan boundaries
// below are unambiguous.
const (
	documentPrefix = "docrec"
	chunkPrefix    = "chkrec"
	docChunkPrefix = "chkdoc" // document-to-chunk index
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(docID string) []byte {
	return []byte(documentPrefix + ":" + docID)
}

// makeChunkKey generates a key for a chunk record by ID.
// Chunk IDs embed a zero-padded ordinal, so key order is document order.
func makeChunkKey(chunkID string) []byte {
	return []byte(chunkPrefix + ":" + chunkID)
}

// makeDocChunkKey generates a composite key for the document-to-chunk index.
// Format: prefix:docID:chunkID
func makeDocChunkKey(docID, chunkID string) []byte {
	return []byte(docChunkPrefix + ":" + docID + ":" + chunkID)
}

// makeDocChunkPrefix generates the scan prefix for a document's chunk index.
func makeDocChunkPrefix(docID string) []byte {
	return []byte(docChunkPrefix + ":" + docID + ":")
}
