package ingest

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrExtractorRequired is returned when a PDF extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrNoPages is returned when a PDF yields no usable page text.
	ErrNoPages = errors.New("no usable pages")

	// ErrNoInputFiles is returned when the input directory contains no PDFs.
	ErrNoInputFiles = errors.New("no input files")
)
