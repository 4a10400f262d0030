package evaluations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pacerode/evaluator/internal/core/ports/primary"
	"github.com/pacerode/evaluator/internal/core/services/evaluation"
	"github.com/pacerode/evaluator/internal/handlers/response"
	"github.com/pacerode/evaluator/internal/static/errs"
)

// EvaluationHandler handles evaluation API requests
type EvaluationHandler struct {
	evalService evaluation.IEvaluationService
	logger      primary.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evalService evaluation.IEvaluationService, logger primary.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
		logger:      logger,
	}
}

// RegisterRoutes registers the API routes for EvaluationHandler
func (h *EvaluationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/evaluations/run", h.Run).Methods("POST")
	router.HandleFunc("/api/evaluations/submit", h.Submit).Methods("POST")
	router.HandleFunc("/api/submissions/{submissionId}", h.GetSubmission).Methods("GET")
	router.HandleFunc("/api/languages", h.GetLanguages).Methods("GET")
}

// Run handles ephemeral evaluation requests; nothing is persisted.
func (h *EvaluationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "Invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	outcome, err := h.evalService.Run(r.Context(), evaluation.RunRequest{
		SourceCode:      req.SourceCode,
		Language:        req.Language,
		Stdin:           req.Stdin,
		ExpectedOutputs: req.ExpectedOutputs,
	})
	if err != nil {
		h.writeEvaluationError(w, err)
		return
	}

	response.WriteSuccess(w, RunResponse{
		AllPassed: outcome.AllPassed,
		Status:    outcome.Status.String(),
		Language:  outcome.Language.Name,
		Results:   toResultResponses(outcome.Results),
	})
}

// Submit handles full-chain evaluation requests including persistence.
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "Invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	sub, err := h.evalService.Submit(r.Context(), evaluation.SubmitRequest{
		RunRequest: evaluation.RunRequest{
			SourceCode:      req.SourceCode,
			Language:        req.Language,
			Stdin:           req.Stdin,
			ExpectedOutputs: req.ExpectedOutputs,
		},
		UserID:    req.UserID,
		ProblemID: req.ProblemID,
	})
	if err != nil {
		h.writeEvaluationError(w, err)
		return
	}

	response.WriteCreated(w, toSubmissionResponse(sub))
}

// GetSubmission handles submission retrieval requests
func (h *EvaluationHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["submissionId"]

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", idStr)
		response.WriteError(w, response.ErrorMessage{
			Message:    "Invalid submission ID",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	sub, err := h.evalService.GetSubmission(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get submission", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "Failed to get submission",
			StatusCode: http.StatusInternalServerError,
		})
		return
	}
	if sub == nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "Submission not found",
			StatusCode: http.StatusNotFound,
		})
		return
	}

	response.WriteSuccess(w, toSubmissionResponse(sub))
}

// GetLanguages handles language catalog requests
func (h *EvaluationHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.evalService.Languages(r.Context())
	if err != nil {
		h.writeEvaluationError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"languages": catalog})
}

// writeEvaluationError maps the evaluation error taxonomy to HTTP statuses
// so callers can tell bad input, engine outage, timeout and lost persistence
// apart instead of receiving a generic failure.
func (h *EvaluationHandler) writeEvaluationError(w http.ResponseWriter, err error) {
	var (
		status int
		reason string
	)
	switch {
	case errors.Is(err, errs.InvalidTestCaseSet):
		status, reason = http.StatusBadRequest, "invalid_test_case_set"
	case errors.Is(err, errs.UnsupportedLanguage):
		status, reason = http.StatusUnprocessableEntity, "unsupported_language"
	case errors.Is(err, errs.EngineUnavailable):
		status, reason = http.StatusBadGateway, "engine_unavailable"
	case errors.Is(err, errs.EvaluationTimeout):
		status, reason = http.StatusGatewayTimeout, "evaluation_timeout"
	case errors.Is(err, errs.PersistenceFailed):
		status, reason = http.StatusInternalServerError, "persistence_failed"
	default:
		status, reason = http.StatusInternalServerError, "internal_error"
	}

	h.logger.Error("Evaluation failed", "reason", reason, "error", err)
	response.WriteError(w, response.ErrorMessage{
		Message:    err.Error(),
		Reason:     reason,
		StatusCode: status,
	})
}
