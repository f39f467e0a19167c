package lexical

import (
	"testing"
)

func testCorpus() []string {
	return []string{
		"Điều 5 Phạt tiền đối với người điều khiển xe ô tô vi phạm nồng độ cồn",
		"Điều 6 Phạt tiền đối với người điều khiển xe mô tô không đội mũ bảo hiểm",
		"Điều 9 Quy định về tốc độ của xe cơ giới trên đường bộ",
		"Điều 10 Hệ thống báo hiệu đường bộ gồm đèn tín hiệu giao thông",
	}
}

func TestTopNRanksMatchingDocumentFirst(t *testing.T) {
	idx := NewBM25(testCorpus())

	hits := idx.TopN(Tokenize("nồng độ cồn"), 3)
	if len(hits) == 0 {
		t.Fatalf("expected at least one hit")
	}
	if hits[0].PassageIndex != 0 {
		t.Fatalf("expected passage 0 first, got %d", hits[0].PassageIndex)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Fatalf("hits not sorted descending at position %d", i)
		}
	}
}

func TestTopNDropsZeroScores(t *testing.T) {
	idx := NewBM25(testCorpus())

	hits := idx.TopN(Tokenize("trượt băng nghệ thuật"), 4)
	if len(hits) != 0 {
		t.Fatalf("expected no hits for unrelated query, got %d", len(hits))
	}
}

func TestTopNCapsResultCount(t *testing.T) {
	idx := NewBM25(testCorpus())

	hits := idx.TopN(Tokenize("Điều xe"), 2)
	if len(hits) > 2 {
		t.Fatalf("expected at most 2 hits, got %d", len(hits))
	}
}

func TestTokenizeKeepsCase(t *testing.T) {
	tokens := Tokenize("Nghị định 100/2019/NĐ-CP")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", tokens)
	}
	if tokens[0] != "Nghị" {
		t.Fatalf("expected case preserved, got %q", tokens[0])
	}
}

func TestScoresLengthMatchesCorpus(t *testing.T) {
	corpus := testCorpus()
	idx := NewBM25(corpus)

	scores := idx.Scores(Tokenize("đường bộ"))
	if len(scores) != len(corpus) {
		t.Fatalf("expected %d scores, got %d", len(corpus), len(scores))
	}
	if scores[2] <= 0 || scores[3] <= 0 {
		t.Fatalf("expected positive scores for documents containing the terms, got %v", scores)
	}
}

func TestTopNKeepsTermsInHalfTheCorpus(t *testing.T) {
	// "đường" and "bộ" each appear in exactly two of the four documents,
	// where raw IDF is zero; the floor must keep those documents retrievable.
	idx := NewBM25(testCorpus())

	hits := idx.TopN(Tokenize("đường bộ"), 4)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	for _, hit := range hits {
		if hit.PassageIndex != 2 && hit.PassageIndex != 3 {
			t.Fatalf("unexpected passage %d in hits", hit.PassageIndex)
		}
		if hit.Score <= 0 {
			t.Fatalf("expected positive score for passage %d, got %v", hit.PassageIndex, hit.Score)
		}
	}
}

func TestEmptyCorpus(t *testing.T) {
	idx := NewBM25(nil)
	if hits := idx.TopN(Tokenize("bất kỳ"), 5); len(hits) != 0 {
		t.Fatalf("expected no hits on empty corpus, got %d", len(hits))
	}
}
