package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Context is one retrieved passage handed to the answer generator,
// with enough metadata to label it as a numbered source in the prompt.
type Context struct {
	Source    string
	Title     string
	FileName  string
	Section   string
	PageStart int
	PageEnd   int
	Text      string
}

// AnswerGenerator produces an answer to a question using only the provided
// context passages. Implementations must be thread-safe for concurrent use.
type AnswerGenerator interface {
	// GenerateAnswer answers the question from the given contexts.
	// In strict mode the generator must refuse to answer beyond the sources
	// and fall back to the fixed no-information sentence; otherwise it may
	// answer cautiously while naming what is missing.
	GenerateAnswer(ctx context.Context, question string, contexts []Context, strict bool) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and AnswerGenerator
// instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// AnswerGenerator returns the grounded answer generation service.
	// The returned AnswerGenerator is safe for concurrent use.
	AnswerGenerator() AnswerGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

// NoInformationAnswer is the fixed sentence returned when retrieval produces
// no usable sources, and the refusal the strict prompt instructs the model
// to use. Keeping it in one place lets the API and the prompt stay in sync.
const NoInformationAnswer = "I don't have enough information in the provided documents to answer this."
