// Package ingest turns source PDFs into a cleaned, chunked corpus.
//
// The pipeline extracts page text, detects section headings with
// conservative heuristics, builds overlapping passages sized for
// embedding, scrubs extraction artifacts, classifies each document by
// source, and persists the results through the storage repositories.
// ExportJSONL writes the corpus in a line-delimited JSON layout for
// offline inspection.
package ingest
