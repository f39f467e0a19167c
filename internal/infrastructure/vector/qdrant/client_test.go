package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

func testPassages() []domain.Passage {
	return []domain.Passage{
		{
			Content: "Điều 5 nội dung",
			PassageMetadata: domain.PassageMetadata{
				SourceFile:     "nghi-dinh-100-2019.pdf",
				DocumentType:   domain.DocumentTypeDecree,
				DocumentNumber: "100/2019/NĐ-CP",
				ArticleNumber:  "5",
			},
		},
		{
			Content: "Điều 6 nội dung",
			PassageMetadata: domain.PassageMetadata{
				SourceFile:     "nghi-dinh-100-2019.pdf",
				DocumentType:   domain.DocumentTypeDecree,
				DocumentNumber: "100/2019/NĐ-CP",
				ArticleNumber:  "6",
			},
		},
	}
}

func TestIndexPassagesEnsuresCollectionOncePerVectorSize(t *testing.T) {
	var ensureCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/law_passages":
			atomic.AddInt32(&ensureCalls, 1)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/law_passages/points":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, "law_passages")
	passages := testPassages()
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	if err := client.IndexPassages(context.Background(), passages, vectors); err != nil {
		t.Fatalf("first IndexPassages() error = %v", err)
	}
	if err := client.IndexPassages(context.Background(), passages, vectors); err != nil {
		t.Fatalf("second IndexPassages() error = %v", err)
	}
	if got := atomic.LoadInt32(&ensureCalls); got != 1 {
		t.Fatalf("expected ensure collection called once, got %d", got)
	}
}

func TestEnsureCollectionIncludesResponseBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/law_passages" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "law_passages")
	err := client.IndexPassages(context.Background(), testPassages()[:1], [][]float32{{0.1, 0.2}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got == "" || !strings.Contains(got, "boom") {
		t.Fatalf("expected error to include body, got %v", err)
	}
}

func TestSearchSendsFilterConditions(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/collections/law_passages/points/search" {
			_ = json.NewDecoder(r.Body).Decode(&captured)
			_, _ = w.Write([]byte(`{"result":[{"score":0.9,"payload":{"content":"Điều 9 nội dung","source_file":"nghi-dinh-100-2019.pdf","document_type":"Nghị định","document_number":"100/2019/NĐ-CP","article_number":"9"}}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "law_passages")
	filter := domain.RetrievalFilter{
		DocumentType:       domain.DocumentTypeDecree,
		DocumentNumberPart: "100",
		ArticleNumber:      "9",
	}
	passages, err := client.Search(context.Background(), []float32{0.1, 0.2}, 7, filter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(passages))
	}
	if passages[0].ArticleNumber != "9" || passages[0].DocumentType != domain.DocumentTypeDecree {
		t.Fatalf("unexpected decoded passage: %+v", passages[0])
	}

	rawFilter, ok := captured["filter"].(map[string]any)
	if !ok {
		t.Fatalf("expected filter in search request, got %v", captured)
	}
	must, ok := rawFilter["must"].([]any)
	if !ok || len(must) != 3 {
		t.Fatalf("expected 3 must conditions, got %v", rawFilter["must"])
	}
}

func TestSearchOmitsFilterWhenZero(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "law_passages")
	if _, err := client.Search(context.Background(), []float32{0.1}, 7, domain.RetrievalFilter{}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, ok := captured["filter"]; ok {
		t.Fatalf("expected no filter for zero filter, got %v", captured["filter"])
	}
}
