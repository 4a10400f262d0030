package domain

import "github.com/google/uuid"

// TestCaseResult is the persisted verdict for a single test case. It is
// created once, owned by its parent Submission and never mutated afterwards.
type TestCaseResult struct {
	ID             uuid.UUID `db:"id"`
	SubmissionID   uuid.UUID `db:"submission_id"`
	Index          int       `db:"idx"` // 1-based position within the submission
	Passed         bool      `db:"passed"`
	Stdout         string    `db:"stdout"`
	ExpectedOutput string    `db:"expected_output"`
	Stderr         *string   `db:"stderr"`
	CompileOutput  *string   `db:"compile_output"`
	StatusText     string    `db:"status_text"`
	MemoryKB       *float64  `db:"memory_kb"`
	TimeSec        *float64  `db:"time_sec"`
}

type TestCaseResultsTable struct {
	ID             string
	SubmissionID   string
	Index          string
	Passed         string
	Stdout         string
	ExpectedOutput string
	Stderr         string
	CompileOutput  string
	StatusText     string
	MemoryKB       string
	TimeSec        string
}

func GetTestCaseResultsTable() TestCaseResultsTable {
	return TestCaseResultsTable{
		ID:             "id",
		SubmissionID:   "submission_id",
		Index:          "idx",
		Passed:         "passed",
		Stdout:         "stdout",
		ExpectedOutput: "expected_output",
		Stderr:         "stderr",
		CompileOutput:  "compile_output",
		StatusText:     "status_text",
		MemoryKB:       "memory_kb",
		TimeSec:        "time_sec",
	}
}

func (t TestCaseResultsTable) GetTableName() string {
	return "test_case_results"
}
