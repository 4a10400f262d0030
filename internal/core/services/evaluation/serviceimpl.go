package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pacerode/evaluator/internal/config"
	"github.com/pacerode/evaluator/internal/core/ports/primary"
	"github.com/pacerode/evaluator/internal/core/ports/secondary"
	"github.com/pacerode/evaluator/internal/domain"
	"github.com/pacerode/evaluator/internal/static/errs"
)

var _ IEvaluationService = (*EvaluationService)(nil)

// EvaluationService implements the IEvaluationService interface
type EvaluationService struct {
	engine    secondary.EngineClient
	subRepo   secondary.SubmissionRepository
	langCache secondary.LanguageCache
	logger    primary.Logger
	cfg       *config.EngineConfig
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	engine secondary.EngineClient,
	subRepo secondary.SubmissionRepository,
	langCache secondary.LanguageCache,
	logger primary.Logger,
	cfg *config.EngineConfig,
) *EvaluationService {
	return &EvaluationService{
		engine:    engine,
		subRepo:   subRepo,
		langCache: langCache,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run evaluates code against test cases without persisting anything.
func (s *EvaluationService) Run(ctx context.Context, req RunRequest) (*EvaluationOutcome, error) {
	return s.evaluate(ctx, req)
}

// Submit runs the full chain: evaluate, then persist the submission, its
// per-test results and, iff every test passed, the solved mark.
func (s *EvaluationService) Submit(ctx context.Context, req SubmitRequest) (*domain.Submission, error) {
	outcome, err := s.evaluate(ctx, req.RunRequest)
	if err != nil {
		return nil, err
	}

	sub := domain.NewSubmission(req.UserID, req.ProblemID, req.SourceCode, req.Language, req.Stdin)
	attachOutcome(sub, outcome)

	if err := s.subRepo.SaveEvaluation(ctx, sub, outcome.AllPassed); err != nil {
		s.logger.Error("Failed to persist evaluation",
			"submissionId", sub.ID,
			"userId", req.UserID,
			"problemId", req.ProblemID,
			"error", err)
		// The submission carries the computed verdicts; return it alongside
		// the error so the caller can retry persistence without re-running
		// untrusted code against the engine.
		return sub, fmt.Errorf("%w: %v", errs.PersistenceFailed, err)
	}

	s.logger.Info("Submission persisted",
		"submissionId", sub.ID,
		"userId", req.UserID,
		"problemId", req.ProblemID,
		"status", sub.StatusText,
		"allPassed", outcome.AllPassed)

	return sub, nil
}

// Languages returns the engine's language catalog, cache first.
func (s *EvaluationService) Languages(ctx context.Context) ([]domain.EngineLanguage, error) {
	return s.catalog(ctx)
}

// GetSubmission retrieves a persisted submission with its results.
func (s *EvaluationService) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	sub, err := s.subRepo.GetSubmission(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get submission", "submissionId", id, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

// evaluate is the shared submit/poll/aggregate sequence behind Run and
// Submit. Test set validation happens before any network call.
func (s *EvaluationService) evaluate(ctx context.Context, req RunRequest) (*EvaluationOutcome, error) {
	if err := validateTestSet(req.Stdin, req.ExpectedOutputs); err != nil {
		return nil, err
	}

	lang, err := s.resolveLanguage(ctx, req.Language)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.TestCaseSpec, len(req.Stdin))
	for i := range req.Stdin {
		specs[i] = domain.TestCaseSpec{
			Stdin:          req.Stdin[i],
			ExpectedOutput: req.ExpectedOutputs[i],
		}
	}

	tokens, err := s.submitBatch(ctx, req.SourceCode, lang.ID, specs)
	if err != nil {
		return nil, err
	}

	raw, err := s.pollUntilTerminal(ctx, tokens)
	if err != nil {
		return nil, err
	}

	results, allPassed := aggregate(raw, req.ExpectedOutputs)

	return &EvaluationOutcome{
		AllPassed: allPassed,
		Status:    overallStatus(raw, allPassed),
		Language:  lang,
		Results:   results,
	}, nil
}

// validateTestSet rejects empty or mismatched-length test case sets. A
// mismatch is a precondition failure, never a partial result.
func validateTestSet(stdin, expected []string) error {
	if len(stdin) == 0 || len(expected) == 0 {
		return fmt.Errorf("%w: empty test case set", errs.InvalidTestCaseSet)
	}
	if len(stdin) != len(expected) {
		return fmt.Errorf("%w: %d stdin entries vs %d expected outputs",
			errs.InvalidTestCaseSet, len(stdin), len(expected))
	}
	return nil
}

// submitBatch sends one job per test case, preserving index order.
func (s *EvaluationService) submitBatch(ctx context.Context, source string, languageID int, specs []domain.TestCaseSpec) ([]string, error) {
	jobs := make([]domain.BatchJob, len(specs))
	for i, spec := range specs {
		jobs[i] = domain.BatchJob{
			SourceCode:     source,
			LanguageID:     languageID,
			Stdin:          spec.Stdin,
			ExpectedOutput: spec.ExpectedOutput,
		}
	}

	tokens, err := s.engine.SubmitBatch(ctx, jobs)
	if err != nil {
		s.logger.Error("Batch submit failed", "jobs", len(jobs), "error", err)
		return nil, fmt.Errorf("%w: batch submit: %v", errs.EngineUnavailable, err)
	}
	if len(tokens) != len(jobs) {
		return nil, fmt.Errorf("%w: engine returned %d tokens for %d jobs",
			errs.EngineUnavailable, len(tokens), len(jobs))
	}

	s.logger.Debug("Batch submitted", "jobs", len(jobs))
	return tokens, nil
}

// attachOutcome consolidates per-test fields onto the submission,
// index-aligned with its stdin set.
func attachOutcome(sub *domain.Submission, outcome *EvaluationOutcome) {
	n := len(outcome.Results)
	sub.Stdout = make([]string, n)
	sub.Stderr = make([]*string, n)
	sub.CompileOutputs = make([]*string, n)
	sub.MemoryKB = make([]*float64, n)
	sub.TimeSec = make([]*float64, n)
	sub.Results = make([]domain.TestCaseResult, n)

	for i, r := range outcome.Results {
		r.SubmissionID = sub.ID
		sub.Results[i] = r
		sub.Stdout[i] = r.Stdout
		sub.Stderr[i] = r.Stderr
		sub.CompileOutputs[i] = r.CompileOutput
		sub.MemoryKB[i] = r.MemoryKB
		sub.TimeSec[i] = r.TimeSec
	}

	sub.Status = outcome.Status
	sub.StatusText = outcome.Status.String()
}
