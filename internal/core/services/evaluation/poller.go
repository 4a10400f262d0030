package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/pacerode/evaluator/internal/domain"
	"github.com/pacerode/evaluator/internal/static/errs"
)

// pollUntilTerminal queries the engine for all tokens in one batched request
// per round until every job reaches a terminal state. The loop is bounded:
// after MaxPollAttempts rounds spaced PollInterval apart the evaluation
// fails with EvaluationTimeout instead of polling forever. Result index i
// always corresponds to token i regardless of engine completion order.
func (s *EvaluationService) pollUntilTerminal(ctx context.Context, tokens []string) ([]domain.RawJobResult, error) {
	for attempt := 1; attempt <= s.cfg.MaxPollAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.PollInterval):
			}
		}

		results, err := s.engine.StatusBatch(ctx, tokens)
		if err != nil {
			s.logger.Error("Batch status poll failed", "attempt", attempt, "error", err)
			return nil, fmt.Errorf("%w: batch status: %v", errs.EngineUnavailable, err)
		}
		if len(results) != len(tokens) {
			return nil, fmt.Errorf("%w: engine returned %d results for %d tokens",
				errs.EngineUnavailable, len(results), len(tokens))
		}

		if pending := countPending(results); pending > 0 {
			s.logger.Debug("Jobs still pending",
				"attempt", attempt,
				"pending", pending,
				"total", len(tokens))
			continue
		}

		return results, nil
	}

	s.logger.Warn("Poll loop exhausted",
		"attempts", s.cfg.MaxPollAttempts,
		"interval", s.cfg.PollInterval,
		"jobs", len(tokens))
	return nil, fmt.Errorf("%w: %d attempts at %s intervals",
		errs.EvaluationTimeout, s.cfg.MaxPollAttempts, s.cfg.PollInterval)
}

func countPending(results []domain.RawJobResult) int {
	pending := 0
	for _, r := range results {
		if !r.Status.IsTerminal() {
			pending++
		}
	}
	return pending
}
