package errs

import "errors"

var (
	UnsupportedLanguage = errors.New("unsupported language")
	InvalidTestCaseSet  = errors.New("test case set is empty or has mismatched lengths")
	EngineUnavailable   = errors.New("execution engine unavailable")
	EvaluationTimeout   = errors.New("evaluation timed out waiting for engine results")
	PersistenceFailed   = errors.New("failed to persist evaluation results")
)
