package config

import "testing"

func TestLoadIncludesRetrievalDefaults(t *testing.T) {
	t.Setenv("RAG_TOP_N_VECTOR", "")
	t.Setenv("RAG_TOP_N_KEYWORD", "")
	t.Setenv("RAG_TOP_K_FINAL", "")

	cfg := Load()
	if cfg.TopNVector != 7 {
		t.Fatalf("expected default top n vector 7, got %d", cfg.TopNVector)
	}
	if cfg.TopNKeyword != 7 {
		t.Fatalf("expected default top n keyword 7, got %d", cfg.TopNKeyword)
	}
	if cfg.TopKFinal != 4 {
		t.Fatalf("expected default top k final 4, got %d", cfg.TopKFinal)
	}
}

func TestLoadParsesRetrievalOverrides(t *testing.T) {
	t.Setenv("RAG_TOP_N_VECTOR", "10")
	t.Setenv("RAG_TOP_N_KEYWORD", "5")
	t.Setenv("RAG_TOP_K_FINAL", "3")

	cfg := Load()
	if cfg.TopNVector != 10 {
		t.Fatalf("expected top n vector 10, got %d", cfg.TopNVector)
	}
	if cfg.TopNKeyword != 5 {
		t.Fatalf("expected top n keyword 5, got %d", cfg.TopNKeyword)
	}
	if cfg.TopKFinal != 3 {
		t.Fatalf("expected top k final 3, got %d", cfg.TopKFinal)
	}
}

func TestLoadFallsBackOnInvalidInt(t *testing.T) {
	t.Setenv("RAG_TOP_K_FINAL", "not-a-number")

	cfg := Load()
	if cfg.TopKFinal != 4 {
		t.Fatalf("expected fallback top k final 4, got %d", cfg.TopKFinal)
	}
}
