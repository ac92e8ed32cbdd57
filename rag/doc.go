// Package rag answers questions over the indexed corpus.
//
// An Answerer embeds the question, retrieves the nearest chunks from
// the vector index (optionally filtered by source or document), and
// hands them to the answer generator as numbered sources. When nothing
// is retrieved the fixed no-information sentence is returned without
// calling the model.
package rag
