package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lawbotvn/lawbot/internal/config"
	"github.com/lawbotvn/lawbot/internal/core/ports"
	"github.com/lawbotvn/lawbot/internal/core/usecase"
	"github.com/lawbotvn/lawbot/internal/infrastructure/lexical"
	"github.com/lawbotvn/lawbot/internal/infrastructure/llm/ollama"
	"github.com/lawbotvn/lawbot/internal/infrastructure/queue/nats"
	"github.com/lawbotvn/lawbot/internal/infrastructure/rerank/tei"
	"github.com/lawbotvn/lawbot/internal/infrastructure/resilience"
	"github.com/lawbotvn/lawbot/internal/infrastructure/store"
	"github.com/lawbotvn/lawbot/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Assistant ports.Assistant
	Queue     ports.ReloadQueue
	Embedder  ports.Embedder
	VectorDB  ports.VectorIndex

	closeFn func()
}

func New(_ context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	reranker := tei.New(cfg.RerankerURL, cfg.RerankerModel, executor)
	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSReloadSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init reload queue: %w", err)
	}

	rules, err := usecase.LoadExpansionRules(cfg.ExpansionRulesPath)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("load expansion rules: %w", err)
	}
	rewriter := usecase.NewQueryRewriter(generator, rules)

	// The builder re-reads the passage file and rebuilds the keyword index
	// from scratch, so a reload picks up a full ingestion run atomically.
	build := func(context.Context) (ports.Retriever, error) {
		passages, err := store.LoadFile(cfg.PassagesPath)
		if err != nil {
			return nil, err
		}
		corpus := make([]string, passages.Len())
		for i, p := range passages.All() {
			corpus[i] = p.Content
		}
		bm25 := lexical.NewBM25(corpus)

		return usecase.NewHybridRetriever(embedder, vectorDB, bm25, passages, reranker, usecase.RetrieverOptions{
			TopNVector:  cfg.TopNVector,
			TopNKeyword: cfg.TopNKeyword,
			TopKFinal:   cfg.TopKFinal,
		}), nil
	}

	assistant := usecase.NewAssistant(build, rewriter, generator, logger)

	return &App{
		Config:    cfg,
		Assistant: assistant,
		Queue:     queue,
		Embedder:  embedder,
		VectorDB:  vectorDB,

		closeFn: func() {
			queue.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
