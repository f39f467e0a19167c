package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

// FileStore holds the ingested passage collection in memory, in ingestion
// order. It is built once at load time and never mutated afterwards; a new
// ingestion run replaces the whole store via reload.
type FileStore struct {
	passages []domain.Passage
}

// LoadFile reads the persisted passage collection written by the ingest
// batch. A missing file is a startup failure, not a retryable condition.
func LoadFile(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrDataNotFound, "load passages", err)
		}
		return nil, fmt.Errorf("read passages file: %w", err)
	}

	var passages []domain.Passage
	if err := json.Unmarshal(raw, &passages); err != nil {
		return nil, fmt.Errorf("decode passages file: %w", err)
	}
	if len(passages) == 0 {
		return nil, domain.WrapError(domain.ErrDataNotFound, "load passages", fmt.Errorf("file %s holds no passages", path))
	}
	for i, p := range passages {
		if p.Content == "" || p.SourceFile == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "load passages",
				fmt.Errorf("passage %d is missing content or source_file", i))
		}
	}

	return &FileStore{passages: passages}, nil
}

// NewFromPassages builds a store directly, used by the ingest batch and tests.
func NewFromPassages(passages []domain.Passage) *FileStore {
	return &FileStore{passages: passages}
}

func (s *FileStore) All() []domain.Passage {
	return s.passages
}

func (s *FileStore) ByIndex(i int) domain.Passage {
	return s.passages[i]
}

func (s *FileStore) Len() int {
	return len(s.passages)
}

// WriteFile persists a passage collection for later loads.
func WriteFile(path string, passages []domain.Passage) error {
	raw, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode passages: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write passages file: %w", err)
	}
	return nil
}
