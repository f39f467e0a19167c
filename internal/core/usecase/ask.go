package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/core/ports"
)

const (
	notReadyText = "Xin lỗi, hệ thống đang khởi động và chưa sẵn sàng. Vui lòng thử lại sau giây lát."
	introText    = "Tôi là LawBot, một trợ lý AI chuyên về Luật Giao thông đường bộ Việt Nam. Tôi có thể giúp gì cho bạn?"
	errorText    = "Đã có lỗi xảy ra trong quá trình xử lý câu hỏi của bạn."
	notFoundText = "Tôi không tìm thấy thông tin cụ thể về vấn đề này trong các tài liệu được cung cấp. Bạn vui lòng làm rõ câu hỏi hoặc tham khảo các văn bản pháp lý chính thức."
)

var metaPhrases = []string{
	"bạn là ai",
	"bạn tên gì",
	"tôi vừa hỏi gì",
	"câu trước tôi hỏi",
	"who are you",
}

// RetrieverBuilder assembles a fresh retrieval pipeline from the current
// on-disk indexes. Load calls it on startup and again on every reload
// signal, swapping the pipeline wholesale.
type RetrieverBuilder func(ctx context.Context) (ports.Retriever, error)

// AssistantUseCase answers traffic-law questions over the ingested corpus.
// Ask never fails from the caller's point of view; every internal error
// degrades to a canned Vietnamese reply.
type AssistantUseCase struct {
	build     RetrieverBuilder
	rewriter  *QueryRewriter
	generator ports.Generator
	logger    *slog.Logger

	ready atomic.Bool

	mu        sync.RWMutex
	retriever ports.Retriever
}

func NewAssistant(build RetrieverBuilder, rewriter *QueryRewriter, generator ports.Generator, logger *slog.Logger) *AssistantUseCase {
	return &AssistantUseCase{
		build:     build,
		rewriter:  rewriter,
		generator: generator,
		logger:    logger,
	}
}

// Load builds the retrieval pipeline and marks the assistant ready. On
// failure the previous pipeline, if any, stays in service.
func (a *AssistantUseCase) Load(ctx context.Context) error {
	retriever, err := a.build(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.retriever = retriever
	a.mu.Unlock()
	a.ready.Store(true)

	a.logger.Info("assistant_loaded")
	return nil
}

func (a *AssistantUseCase) IsReady() bool {
	return a.ready.Load()
}

// Ask answers a question given the conversation so far. The returned
// answer always carries text; sources are present only when the reply is
// grounded in retrieved passages.
func (a *AssistantUseCase) Ask(ctx context.Context, question string, history []domain.Turn) domain.Answer {
	if !a.IsReady() {
		return domain.Answer{Text: notReadyText, Sources: []domain.PassageMetadata{}}
	}

	if IsMetaQuestion(question) {
		return a.answerMeta(ctx, question, history)
	}

	expanded := a.rewriter.Expand(question)
	standalone, err := a.rewriter.Condense(ctx, expanded, history)
	if err != nil {
		a.logger.Error("condense_failed", "error", err)
		return domain.Answer{Text: errorText, Sources: []domain.PassageMetadata{}}
	}

	filter := ExtractFilter(standalone)

	a.mu.RLock()
	retriever := a.retriever
	a.mu.RUnlock()

	outcome, err := retriever.Retrieve(ctx, standalone, filter)
	if err != nil {
		a.logger.Error("retrieval_failed", "error", err)
		return domain.Answer{Text: errorText, Sources: []domain.PassageMetadata{}}
	}
	if outcome.Empty() {
		return domain.Answer{Text: notFoundText, Sources: []domain.PassageMetadata{}}
	}

	text, err := a.generator.GenerateFromPrompt(ctx, answerPrompt(standalone, outcome.Passages))
	if err != nil {
		a.logger.Error("generation_failed", "error", err)
		return domain.Answer{Text: errorText, Sources: []domain.PassageMetadata{}}
	}

	sources := make([]domain.PassageMetadata, len(outcome.Passages))
	for i, p := range outcome.Passages {
		sources[i] = p.Metadata()
	}
	return domain.Answer{Text: strings.TrimSpace(text), Sources: sources}
}

// answerMeta handles questions about the conversation itself without
// touching the retrieval pipeline.
func (a *AssistantUseCase) answerMeta(ctx context.Context, question string, history []domain.Turn) domain.Answer {
	if len(history) == 0 {
		return domain.Answer{Text: introText, Sources: []domain.PassageMetadata{}}
	}

	text, err := a.generator.GenerateFromPrompt(ctx, metaPrompt(question, history))
	if err != nil {
		a.logger.Error("meta_generation_failed", "error", err)
		return domain.Answer{Text: errorText, Sources: []domain.PassageMetadata{}}
	}
	return domain.Answer{Text: strings.TrimSpace(text), Sources: []domain.PassageMetadata{}}
}

// IsMetaQuestion reports whether the question is about the conversation
// itself rather than traffic law.
func IsMetaQuestion(question string) bool {
	lowered := strings.ToLower(question)
	for _, phrase := range metaPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
