package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/core/ports"
)

// RetrieverOptions bound the candidate pools and the final context size.
type RetrieverOptions struct {
	TopNVector  int
	TopNKeyword int
	TopKFinal   int
}

func (o RetrieverOptions) normalize() RetrieverOptions {
	out := o
	if out.TopNVector <= 0 {
		out.TopNVector = 7
	}
	if out.TopNKeyword <= 0 {
		out.TopNKeyword = 7
	}
	if out.TopKFinal <= 0 {
		out.TopKFinal = 4
	}
	return out
}

// HybridRetriever combines filtered semantic search with unfiltered BM25
// keyword search, then lets a cross-encoder re-score the merged pool
// against the query. Only the reranked top passages survive.
type HybridRetriever struct {
	embedder ports.Embedder
	vector   ports.VectorIndex
	lexical  ports.LexicalIndex
	store    ports.PassageStore
	reranker ports.CrossEncoder
	opts     RetrieverOptions
}

func NewHybridRetriever(
	embedder ports.Embedder,
	vector ports.VectorIndex,
	lexical ports.LexicalIndex,
	store ports.PassageStore,
	reranker ports.CrossEncoder,
	opts RetrieverOptions,
) *HybridRetriever {
	return &HybridRetriever{
		embedder: embedder,
		vector:   vector,
		lexical:  lexical,
		store:    store,
		reranker: reranker,
		opts:     opts.normalize(),
	}
}

// Retrieve runs both retrieval arms and returns the reranked context.
// The metadata filter narrows only the semantic arm; the keyword arm
// always searches the whole corpus so lexical matches outside the cited
// document can still surface.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, filter domain.RetrievalFilter) (domain.RetrievalOutcome, error) {
	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return domain.RetrievalOutcome{}, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed query", err)
	}

	semantic, err := r.vector.Search(ctx, vec, r.opts.TopNVector, filter)
	if err != nil {
		return domain.RetrievalOutcome{}, domain.WrapError(domain.ErrTemporary, "vector search", err)
	}

	hits := r.lexical.TopN(strings.Fields(query), r.opts.TopNKeyword)

	merged := r.merge(semantic, hits)
	if len(merged) == 0 {
		return domain.RetrievalOutcome{}, nil
	}

	texts := make([]string, len(merged))
	for i, p := range merged {
		texts[i] = p.Content
	}
	scores, err := r.reranker.Predict(ctx, query, texts)
	if err != nil {
		return domain.RetrievalOutcome{}, domain.WrapError(domain.ErrTemporary, "rerank", err)
	}

	ranked := make([]domain.RerankedPassage, len(merged))
	for i, p := range merged {
		ranked[i] = domain.RerankedPassage{Passage: p, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > r.opts.TopKFinal {
		ranked = ranked[:r.opts.TopKFinal]
	}

	passages := make([]domain.Passage, len(ranked))
	for i, rp := range ranked {
		passages[i] = rp.Passage
	}
	return domain.RetrievalOutcome{Passages: passages}, nil
}

// merge deduplicates the two candidate pools by passage content. Semantic
// results go in first so a passage found by both arms keeps its semantic
// identity, and insertion order is preserved for the reranker.
func (r *HybridRetriever) merge(semantic []domain.Passage, hits []domain.LexicalHit) []domain.Passage {
	seen := make(map[string]struct{}, len(semantic)+len(hits))
	merged := make([]domain.Passage, 0, len(semantic)+len(hits))

	for _, p := range semantic {
		if _, ok := seen[p.Content]; ok {
			continue
		}
		seen[p.Content] = struct{}{}
		merged = append(merged, p)
	}
	for _, hit := range hits {
		p := r.store.ByIndex(hit.PassageIndex)
		if _, ok := seen[p.Content]; ok {
			continue
		}
		seen[p.Content] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}
