package secondary

import (
	"context"

	"github.com/google/uuid"

	"github.com/pacerode/evaluator/internal/domain"
)

// SubmissionRepository persists evaluations.
type SubmissionRepository interface {
	// SaveEvaluation stores the submission, its test case results and, when
	// markSolved is set, upserts the solved mark for (user, problem) — all
	// as one unit of work. The upsert is insert-or-no-op so repeated
	// accepted submissions never duplicate the mark.
	SaveEvaluation(ctx context.Context, submission *domain.Submission, markSolved bool) error

	// GetSubmission retrieves a submission with its test case results.
	// Returns (nil, nil) when no such submission exists.
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}
