package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lawbotvn/lawbot/internal/config"
	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/observability/metrics"
)

type fakeAssistant struct {
	ready        bool
	answer       domain.Answer
	lastQuestion string
	lastHistory  []domain.Turn
}

func (f *fakeAssistant) Load(context.Context) error { return nil }

func (f *fakeAssistant) IsReady() bool { return f.ready }

func (f *fakeAssistant) Ask(_ context.Context, question string, history []domain.Turn) domain.Answer {
	f.lastQuestion = question
	f.lastHistory = history
	return f.answer
}

func newTestHandler(assistant *fakeAssistant, cfg config.Config) http.Handler {
	return NewRouter(assistant, metrics.NewServerMetrics("api"), cfg).Handler()
}

func TestAskReturnsAnswerWithSources(t *testing.T) {
	assistant := &fakeAssistant{
		ready: true,
		answer: domain.Answer{
			Text: "Theo Điều 5, mức phạt là 4-6 triệu đồng.",
			Sources: []domain.PassageMetadata{
				{SourceFile: "nghi-dinh-100-2019.pdf", DocumentType: domain.DocumentTypeDecree, ArticleNumber: "5"},
			},
		},
	}
	handler := newTestHandler(assistant, config.Config{})

	body := `{"question":"Vượt đèn đỏ phạt bao nhiêu?","history":[{"human":"xin chào","ai":"chào bạn"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/ask", strings.NewReader(body))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var answer domain.Answer
	if err := json.NewDecoder(res.Body).Decode(&answer); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if answer.Text != assistant.answer.Text {
		t.Fatalf("unexpected answer %q", answer.Text)
	}
	if len(answer.Sources) != 1 || answer.Sources[0].ArticleNumber != "5" {
		t.Fatalf("unexpected sources %+v", answer.Sources)
	}
	if len(assistant.lastHistory) != 1 || assistant.lastHistory[0].Human != "xin chào" {
		t.Fatalf("expected history forwarded, got %+v", assistant.lastHistory)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	handler := newTestHandler(&fakeAssistant{ready: true}, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/ask", strings.NewReader(`{"question":"  "}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAskRejectsInvalidJSON(t *testing.T) {
	handler := newTestHandler(&fakeAssistant{ready: true}, config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/ask", strings.NewReader(`{`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAskMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&fakeAssistant{ready: true}, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/ask", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestReadyzReflectsAssistantState(t *testing.T) {
	assistant := &fakeAssistant{ready: false}
	handler := newTestHandler(assistant, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while loading, got %d", res.Code)
	}

	assistant.ready = true
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 when ready, got %d", res.Code)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	handler := newTestHandler(&fakeAssistant{ready: true}, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRequestIDHeaderIsPreserved(t *testing.T) {
	handler := newTestHandler(&fakeAssistant{ready: true}, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-123")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected incoming request id preserved, got %q", got)
	}
}
