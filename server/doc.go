// Package server exposes the question-answering service over HTTP.
//
// Endpoints mirror the corpus lifecycle: POST /ask answers questions,
// GET /health and /peek report index state, GET /list_docs lists the
// ingested documents, and GET /debug_query exercises raw retrieval.
package server
