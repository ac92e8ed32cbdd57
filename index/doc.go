// Package index maintains the vector index over the chunked corpus.
//
// The index is an embedded chromem collection persisted next to the
// document store. Builder embeds chunks in batches with retry and
// writes them into the collection; Store answers similarity queries
// with optional source and document filters.
package index
