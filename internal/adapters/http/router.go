package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lawbotvn/lawbot/internal/config"
	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/core/ports"
	"github.com/lawbotvn/lawbot/internal/core/usecase"
	"github.com/lawbotvn/lawbot/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	assistant ports.Assistant
	metrics   *metrics.ServerMetrics
	cfg       config.Config
}

func NewRouter(assistant ports.Assistant, serverMetrics *metrics.ServerMetrics, cfg config.Config) *Router {
	return &Router{
		assistant: assistant,
		metrics:   serverMetrics,
		cfg:       cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/readyz", rt.readyz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/v1/chat/ask", rt.ask)

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) readyz(w http.ResponseWriter, _ *http.Request) {
	if !rt.assistant.IsReady() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type askRequest struct {
	Question string `json:"question"`
	History  []struct {
		Human string `json:"human"`
		AI    string `json:"ai"`
	} `json:"history"`
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	history := make([]domain.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, domain.Turn{Human: turn.Human, AI: turn.AI})
	}

	start := time.Now()
	answer := rt.assistant.Ask(r.Context(), req.Question, history)

	if usecase.IsMetaQuestion(req.Question) {
		rt.metrics.RecordMetaQuestion(serviceName)
	} else {
		rt.metrics.RecordAsk(serviceName, len(answer.Sources), time.Since(start))
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
