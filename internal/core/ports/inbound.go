package ports

import (
	"context"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

// Assistant is the inbound contract exposed to the serving layer. Ask never
// returns an error: every internal failure degrades to a canned answer with
// empty sources, so the serving layer only ever renders an Answer.
type Assistant interface {
	Load(ctx context.Context) error
	IsReady() bool
	Ask(ctx context.Context, question string, history []domain.Turn) domain.Answer
}
