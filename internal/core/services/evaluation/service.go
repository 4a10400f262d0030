package evaluation

import (
	"context"

	"github.com/google/uuid"

	"github.com/pacerode/evaluator/internal/domain"
)

// RunRequest carries one ephemeral evaluation: source code, a human-readable
// language name and the ordered test case pairs. Stdin and ExpectedOutputs
// are index-aligned.
type RunRequest struct {
	SourceCode      string
	Language        string
	Stdin           []string
	ExpectedOutputs []string
}

// SubmitRequest is a RunRequest attributed to a user and a problem; its
// outcome is persisted.
type SubmitRequest struct {
	RunRequest
	UserID    string
	ProblemID string
}

// EvaluationOutcome is the aggregated verdict of one evaluation.
type EvaluationOutcome struct {
	AllPassed bool
	Status    domain.JobStatus
	Language  domain.EngineLanguage
	Results   []domain.TestCaseResult
}

type IEvaluationService interface {
	// Run evaluates code against the test cases without persisting anything.
	Run(ctx context.Context, req RunRequest) (*EvaluationOutcome, error)

	// Submit runs the full chain including persistence. When persistence
	// fails after results were computed, the unsaved submission is returned
	// together with the error so the caller does not lose the verdicts.
	Submit(ctx context.Context, req SubmitRequest) (*domain.Submission, error)

	// Languages returns the engine's language catalog.
	Languages(ctx context.Context) ([]domain.EngineLanguage, error)

	// GetSubmission retrieves a persisted submission with its results.
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}
