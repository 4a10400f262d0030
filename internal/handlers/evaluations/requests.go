package evaluations

import (
	"time"

	"github.com/google/uuid"

	"github.com/pacerode/evaluator/internal/domain"
)

// EvaluationRequest represents a request to run code against test cases
type EvaluationRequest struct {
	SourceCode      string   `json:"source_code"`
	Language        string   `json:"language"`
	Stdin           []string `json:"stdin"`
	ExpectedOutputs []string `json:"expected_outputs"`
}

// SubmitRequest represents a request to run and persist an evaluation
type SubmitRequest struct {
	EvaluationRequest
	UserID    string `json:"user_id"`
	ProblemID string `json:"problem_id"`
}

// TestCaseResultResponse is the per-test verdict in API responses
type TestCaseResultResponse struct {
	Index          int      `json:"index"`
	Passed         bool     `json:"passed"`
	Stdout         string   `json:"stdout"`
	ExpectedOutput string   `json:"expected_output"`
	Stderr         *string  `json:"stderr"`
	CompileOutput  *string  `json:"compile_output"`
	Status         string   `json:"status"`
	MemoryKB       *float64 `json:"memory_kb"`
	TimeSec        *float64 `json:"time_sec"`
}

// RunResponse represents the outcome of an ephemeral evaluation
type RunResponse struct {
	AllPassed bool                     `json:"all_passed"`
	Status    string                   `json:"status"`
	Language  string                   `json:"language"`
	Results   []TestCaseResultResponse `json:"results"`
}

// SubmissionResponse represents a persisted submission
type SubmissionResponse struct {
	ID          uuid.UUID                `json:"id"`
	UserID      string                   `json:"user_id"`
	ProblemID   string                   `json:"problem_id"`
	Language    string                   `json:"language"`
	Status      string                   `json:"status"`
	SubmittedAt time.Time                `json:"submitted_at"`
	Results     []TestCaseResultResponse `json:"results"`
}

func toResultResponses(results []domain.TestCaseResult) []TestCaseResultResponse {
	out := make([]TestCaseResultResponse, len(results))
	for i, r := range results {
		out[i] = TestCaseResultResponse{
			Index:          r.Index,
			Passed:         r.Passed,
			Stdout:         r.Stdout,
			ExpectedOutput: r.ExpectedOutput,
			Stderr:         r.Stderr,
			CompileOutput:  r.CompileOutput,
			Status:         r.StatusText,
			MemoryKB:       r.MemoryKB,
			TimeSec:        r.TimeSec,
		}
	}
	return out
}

func toSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          sub.ID,
		UserID:      sub.UserID,
		ProblemID:   sub.ProblemID,
		Language:    sub.Language,
		Status:      sub.StatusText,
		SubmittedAt: sub.SubmittedAt,
		Results:     toResultResponses(sub.Results),
	}
}
