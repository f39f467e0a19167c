package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/lawbotvn/lawbot/internal/bootstrap"
	"github.com/lawbotvn/lawbot/internal/config"
	"github.com/lawbotvn/lawbot/internal/core/domain"
	"github.com/lawbotvn/lawbot/internal/infrastructure/ingest"
	"github.com/lawbotvn/lawbot/internal/infrastructure/store"
	"github.com/lawbotvn/lawbot/internal/observability/logging"
)

const embedBatchSize = 32

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("ingest", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	passages, err := buildPassages(cfg.PDFDirectory, logger)
	if err != nil {
		log.Fatalf("ingest error: %v", err)
	}
	if len(passages) == 0 {
		log.Fatalf("no passages extracted from %s", cfg.PDFDirectory)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PassagesPath), 0o755); err != nil {
		log.Fatalf("create passages directory: %v", err)
	}
	if err := store.WriteFile(cfg.PassagesPath, passages); err != nil {
		log.Fatalf("persist passages: %v", err)
	}
	logger.Info("passages_persisted", "count", len(passages), "path", cfg.PassagesPath)

	if err := indexPassages(ctx, app, passages); err != nil {
		log.Fatalf("index passages: %v", err)
	}
	logger.Info("passages_indexed", "count", len(passages))

	if err := app.Queue.PublishIndexRebuilt(ctx); err != nil {
		log.Fatalf("publish reload signal: %v", err)
	}
	logger.Info("reload_signal_published")
}

// buildPassages extracts, cleans, and segments every PDF in dir. Files
// are processed in name order so repeated runs yield the same passage
// order and therefore the same keyword index.
func buildPassages(dir string, logger *slog.Logger) ([]domain.Passage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var passages []domain.Passage
	for _, name := range files {
		raw, err := ingest.ExtractText(filepath.Join(dir, name))
		if err != nil {
			logger.Error("pdf_extract_failed", "file", name, "error", err)
			continue
		}
		split := ingest.SplitLawDocument(ingest.CleanText(raw), name)
		logger.Info("pdf_processed", "file", name, "passages", len(split))
		passages = append(passages, split...)
	}
	return passages, nil
}

func indexPassages(ctx context.Context, app *bootstrap.App, passages []domain.Passage) error {
	for start := 0; start < len(passages); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Content
		}
		vectors, err := app.Embedder.Embed(ctx, texts)
		if err != nil {
			return err
		}
		if err := app.VectorDB.IndexPassages(ctx, batch, vectors); err != nil {
			return err
		}
	}
	return nil
}
