package secondary

import (
	"context"

	"github.com/pacerode/evaluator/internal/domain"
)

// EngineClient is the boundary to the external sandboxed execution engine.
// It is consumed purely as a network service: a language catalog query, a
// batch-submit endpoint returning one opaque token per job, and a
// batch-status endpoint reporting per-token progress and, once terminal,
// outputs and resource usage.
type EngineClient interface {
	// Languages returns the engine's published language catalog.
	Languages(ctx context.Context) ([]domain.EngineLanguage, error)

	// SubmitBatch submits one job per entry and returns the job tokens in
	// the same order as the input.
	SubmitBatch(ctx context.Context, jobs []domain.BatchJob) ([]string, error)

	// StatusBatch reports the current result for every token, in the same
	// order as the tokens argument.
	StatusBatch(ctx context.Context, tokens []string) ([]domain.RawJobResult, error)
}
