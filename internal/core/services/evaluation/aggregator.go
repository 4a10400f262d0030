package evaluation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pacerode/evaluator/internal/domain"
)

// aggregate turns raw engine results into per-test verdicts. A test passes
// when its whitespace-trimmed stdout equals the whitespace-trimmed expected
// output; there is no numeric tolerance or normalization beyond the trim.
// Nil stderr/compile output are preserved as nil. Raw results and expected
// outputs are index-aligned and already validated to be the same length.
func aggregate(raw []domain.RawJobResult, expected []string) ([]domain.TestCaseResult, bool) {
	results := make([]domain.TestCaseResult, len(raw))
	allPassed := true

	for i, r := range raw {
		passed := strings.TrimSpace(r.Stdout) == strings.TrimSpace(expected[i])
		if !passed {
			allPassed = false
		}

		results[i] = domain.TestCaseResult{
			ID:             uuid.New(),
			Index:          i + 1,
			Passed:         passed,
			Stdout:         r.Stdout,
			ExpectedOutput: expected[i],
			Stderr:         r.Stderr,
			CompileOutput:  r.CompileOutput,
			StatusText:     r.StatusText,
			MemoryKB:       r.MemoryKB,
			TimeSec:        r.TimeSec,
		}
	}

	return results, allPassed
}

// overallStatus derives the submission-level status: Accepted when every
// test passed, otherwise the first failing test's terminal category. An
// accepted run whose output merely differs from the expected output counts
// as Wrong Answer.
func overallStatus(raw []domain.RawJobResult, allPassed bool) domain.JobStatus {
	if allPassed {
		return domain.StatusAccepted
	}
	for _, r := range raw {
		if r.Status != domain.StatusAccepted {
			return r.Status
		}
	}
	return domain.StatusWrongAnswer
}
