package lexical

import (
	"math"
	"sort"
	"strings"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

const (
	k1      = 1.5
	b       = 0.75
	epsilon = 0.25
)

// BM25 scores the passage corpus with Okapi BM25. The index is immutable
// after construction; a corpus change means building a new index.
//
// Tokens are whitespace-separated and matched verbatim, no case folding
// and no stemming. Vietnamese legal text keys on exact terms such as
// "Điều" and document numbers, so normalization would hurt more than help.
type BM25 struct {
	docFreqs  []map[string]int
	docLens   []int
	avgDocLen float64
	idf       map[string]float64
}

// NewBM25 indexes the corpus in ingestion order. Document positions in the
// corpus slice are the indices reported by TopN.
func NewBM25(corpus []string) *BM25 {
	idx := &BM25{
		docFreqs: make([]map[string]int, len(corpus)),
		docLens:  make([]int, len(corpus)),
		idf:      make(map[string]float64),
	}

	df := make(map[string]int)
	totalLen := 0
	for i, doc := range corpus {
		tokens := Tokenize(doc)
		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		idx.docFreqs[i] = freqs
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)
		for tok := range freqs {
			df[tok]++
		}
	}
	if len(corpus) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(corpus))
	}

	// Standard probabilistic IDF. Terms in half the corpus or more get a
	// non-positive raw value; those are floored to epsilon times the average
	// IDF so common legal boilerplate still contributes instead of zeroing
	// out every document that matches only on such terms.
	n := float64(len(corpus))
	idfSum := 0.0
	var nonPositive []string
	for tok, freq := range df {
		v := math.Log((n - float64(freq) + 0.5) / (float64(freq) + 0.5))
		idx.idf[tok] = v
		idfSum += v
		if v <= 0 {
			nonPositive = append(nonPositive, tok)
		}
	}
	if len(idx.idf) > 0 {
		floor := epsilon * (idfSum / float64(len(idx.idf)))
		for _, tok := range nonPositive {
			idx.idf[tok] = floor
		}
	}

	return idx
}

// Tokenize splits text the same way queries are split at retrieval time.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Scores returns one BM25 score per corpus document for the query tokens.
func (x *BM25) Scores(tokens []string) []float64 {
	scores := make([]float64, len(x.docFreqs))
	if x.avgDocLen == 0 {
		return scores
	}
	for _, tok := range tokens {
		idf, ok := x.idf[tok]
		if !ok {
			continue
		}
		for i, freqs := range x.docFreqs {
			tf := float64(freqs[tok])
			if tf == 0 {
				continue
			}
			norm := k1 * (1 - b + b*float64(x.docLens[i])/x.avgDocLen)
			scores[i] += idf * tf * (k1 + 1) / (tf + norm)
		}
	}
	return scores
}

// TopN returns up to n documents with positive scores, best first. Ties
// keep ingestion order.
func (x *BM25) TopN(tokens []string, n int) []domain.LexicalHit {
	if n <= 0 {
		return nil
	}
	scores := x.Scores(tokens)
	hits := make([]domain.LexicalHit, 0, n)
	for i, s := range scores {
		if s > 0 {
			hits = append(hits, domain.LexicalHit{PassageIndex: i, Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
