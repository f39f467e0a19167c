package tei

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lawbotvn/lawbot/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})
}

func TestPredictRestoresInputOrder(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rerank" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		// Endpoint replies best first, not in input order.
		_, _ = w.Write([]byte(`[{"index":2,"score":0.9},{"index":0,"score":0.4},{"index":1,"score":0.1}]`))
	}))
	defer server.Close()

	client := New(server.URL, "reranker-model", testExecutor())
	scores, err := client.Predict(context.Background(), "mức phạt vượt đèn đỏ", []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	want := []float64{0.4, 0.1, 0.9}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("score %d = %v, want %v", i, scores[i], want[i])
		}
	}
	if captured["query"] != "mức phạt vượt đèn đỏ" {
		t.Fatalf("expected query forwarded, got %v", captured["query"])
	}
	if texts, _ := captured["texts"].([]any); len(texts) != 3 {
		t.Fatalf("expected 3 texts, got %v", captured["texts"])
	}
}

func TestPredictEmptyTextsSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected for empty texts")
	}))
	defer server.Close()

	client := New(server.URL, "", testExecutor())
	scores, err := client.Predict(context.Background(), "câu hỏi", nil)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if scores != nil {
		t.Fatalf("expected nil scores, got %v", scores)
	}
}

func TestPredictRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			http.Error(w, "loading model", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"index":0,"score":0.7}]`))
	}))
	defer server.Close()

	client := New(server.URL, "", testExecutor())
	scores, err := client.Predict(context.Background(), "câu hỏi", []string{"A"})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(scores) != 1 || scores[0] != 0.7 {
		t.Fatalf("unexpected scores %v", scores)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestPredictRejectsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"index":0,"score":0.7}]`))
	}))
	defer server.Close()

	client := New(server.URL, "", testExecutor())
	if _, err := client.Predict(context.Background(), "câu hỏi", []string{"A", "B"}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
