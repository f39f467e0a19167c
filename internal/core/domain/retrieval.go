package domain

// RetrievalFilter narrows semantic search by passage metadata. The document
// number is a substring constraint: questions usually give a short form of
// the canonical stored number ("100" for "100/2019/NĐ-CP"). The article
// number is exact. A zero filter means unrestricted search.
type RetrievalFilter struct {
	DocumentType       DocumentType `json:"document_type,omitempty"`
	DocumentNumberPart string       `json:"document_number_part,omitempty"`
	ArticleNumber      string       `json:"article_number,omitempty"`
}

func (f RetrievalFilter) IsZero() bool {
	return f.DocumentType == "" && f.DocumentNumberPart == "" && f.ArticleNumber == ""
}

// Turn is one completed exchange of a conversation, owned by the serving
// layer and passed in read-only per call.
type Turn struct {
	Human string `json:"human"`
	AI    string `json:"ai"`
}

// RerankedPassage pairs a candidate with its cross-encoder relevance score.
// It lives only inside one retrieval call.
type RerankedPassage struct {
	Passage Passage
	Score   float64
}

// LexicalHit maps a lexical score back to a passage by its ingestion-order
// index in the store.
type LexicalHit struct {
	PassageIndex int
	Score        float64
}

// RetrievalOutcome distinguishes the valid "nothing relevant" result from
// true faults, which travel as errors.
type RetrievalOutcome struct {
	Passages []Passage
}

func (o RetrievalOutcome) Empty() bool {
	return len(o.Passages) == 0
}

// Answer is the invariant shape of every ask response.
type Answer struct {
	Text    string            `json:"answer"`
	Sources []PassageMetadata `json:"sources"`
}
