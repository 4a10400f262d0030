package evaluations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pacerode/evaluator/internal/core/services/evaluation"
	"github.com/pacerode/evaluator/internal/domain"
	"github.com/pacerode/evaluator/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeEvalService struct {
	runOutcome *evaluation.EvaluationOutcome
	runErr     error
	submission *domain.Submission
	submitErr  error
}

func (f *fakeEvalService) Run(ctx context.Context, req evaluation.RunRequest) (*evaluation.EvaluationOutcome, error) {
	return f.runOutcome, f.runErr
}

func (f *fakeEvalService) Submit(ctx context.Context, req evaluation.SubmitRequest) (*domain.Submission, error) {
	return f.submission, f.submitErr
}

func (f *fakeEvalService) Languages(ctx context.Context) ([]domain.EngineLanguage, error) {
	return []domain.EngineLanguage{{ID: 71, Name: "Python (3.8.1)"}}, nil
}

func (f *fakeEvalService) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if f.submission != nil && f.submission.ID == id {
		return f.submission, nil
	}
	return nil, nil
}

func newRouter(svc evaluation.IEvaluationService) *mux.Router {
	r := mux.NewRouter()
	NewEvaluationHandler(svc, nopLogger{}).RegisterRoutes(r)
	return r
}

func runBody() string {
	return `{"source_code":"print(7)","language":"python","stdin":["3 4"],"expected_outputs":["7"]}`
}

func TestRunEndpoint(t *testing.T) {
	svc := &fakeEvalService{
		runOutcome: &evaluation.EvaluationOutcome{
			AllPassed: true,
			Status:    domain.StatusAccepted,
			Language:  domain.EngineLanguage{ID: 71, Name: "Python (3.8.1)"},
			Results: []domain.TestCaseResult{
				{Index: 1, Passed: true, Stdout: "7", ExpectedOutput: "7", StatusText: "Accepted"},
			},
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluations/run", strings.NewReader(runBody()))
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp RunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.AllPassed || resp.Status != "Accepted" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Results) != 1 || resp.Results[0].Index != 1 {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestRunEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{errs.InvalidTestCaseSet, http.StatusBadRequest, "invalid_test_case_set"},
		{errs.UnsupportedLanguage, http.StatusUnprocessableEntity, "unsupported_language"},
		{errs.EngineUnavailable, http.StatusBadGateway, "engine_unavailable"},
		{errs.EvaluationTimeout, http.StatusGatewayTimeout, "evaluation_timeout"},
		{errs.PersistenceFailed, http.StatusInternalServerError, "persistence_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.wantReason, func(t *testing.T) {
			svc := &fakeEvalService{runErr: fmt.Errorf("%w: details", tt.err)}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/evaluations/run", strings.NewReader(runBody()))
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp struct {
				Reason string `json:"reason"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", resp.Reason, tt.wantReason)
			}
		})
	}
}

func TestRunEndpoint_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluations/run", strings.NewReader("{"))
	newRouter(&fakeEvalService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitEndpoint(t *testing.T) {
	sub := domain.NewSubmission("user-1", "problem-9", "print(7)", "python", []string{"3 4"})
	sub.StatusText = "Accepted"
	sub.Results = []domain.TestCaseResult{
		{SubmissionID: sub.ID, Index: 1, Passed: true, Stdout: "7", ExpectedOutput: "7", StatusText: "Accepted"},
	}
	svc := &fakeEvalService{submission: sub}

	body := `{"source_code":"print(7)","language":"python","stdin":["3 4"],"expected_outputs":["7"],"user_id":"user-1","problem_id":"problem-9"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluations/submit", strings.NewReader(body))
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp SubmissionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != sub.ID || resp.Status != "Accepted" || len(resp.Results) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetSubmissionEndpoint(t *testing.T) {
	sub := domain.NewSubmission("user-1", "problem-9", "print(7)", "python", []string{"3 4"})
	svc := &fakeEvalService{submission: sub}
	router := newRouter(svc)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions/"+sub.ID.String(), nil)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions/"+uuid.NewString(), nil)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions/not-a-uuid", nil)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
