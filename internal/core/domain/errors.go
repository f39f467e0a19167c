package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDataNotFound         = errors.New("passage data not found")
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")
	ErrGeneration           = errors.New("generation failed")
	ErrNotReady             = errors.New("pipeline not ready")
	ErrInvalidInput         = errors.New("invalid input")
	ErrTemporary            = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
