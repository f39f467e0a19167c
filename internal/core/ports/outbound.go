package ports

import (
	"context"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

// PassageStore holds the full ingested corpus in ingestion order.
type PassageStore interface {
	All() []domain.Passage
	ByIndex(i int) domain.Passage
	Len() int
}

// LexicalIndex scores whitespace-tokenized queries against every passage.
type LexicalIndex interface {
	Scores(tokens []string) []float64
	TopN(tokens []string, n int) []domain.LexicalHit
}

// Embedder builds dense vectors for passages and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex performs filtered nearest-neighbor search over passage
// embeddings.
type VectorIndex interface {
	IndexPassages(ctx context.Context, passages []domain.Passage, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, k int, filter domain.RetrievalFilter) ([]domain.Passage, error)
}

// CrossEncoder scores (query, text) pairs jointly. Scores come back in
// input order.
type CrossEncoder interface {
	Predict(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Generator is the opaque text-completion service.
type Generator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}

// Retriever selects the passages that best answer a standalone question.
type Retriever interface {
	Retrieve(ctx context.Context, query string, filter domain.RetrievalFilter) (domain.RetrievalOutcome, error)
}

// ReloadQueue signals that a new ingestion run finished and the indexes
// should be rebuilt wholesale.
type ReloadQueue interface {
	PublishIndexRebuilt(ctx context.Context) error
	SubscribeIndexRebuilt(ctx context.Context, handler func(context.Context) error) error
}
