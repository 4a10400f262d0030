package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one persisted evaluation of user code against a problem's
// test cases. The per-test-case stdout/stderr/compile-output/memory/time
// collections are index-aligned with Stdin; Results carries the same data as
// individually persisted rows. A Submission is created exactly once per
// submit call and never mutated after its results are attached.
type Submission struct {
	ID             uuid.UUID  `db:"id"`
	UserID         string     `db:"user_id"`
	ProblemID      string     `db:"problem_id"`
	SourceCode     string     `db:"source_code"`
	Language       string     `db:"language"`
	Stdin          []string   `db:"stdin"`
	Stdout         []string   `db:"stdout"`
	Stderr         []*string  `db:"stderr"`
	CompileOutputs []*string  `db:"compile_outputs"`
	MemoryKB       []*float64 `db:"memory_kb"`
	TimeSec        []*float64 `db:"time_sec"`
	Status         JobStatus  `db:"-"`
	StatusText     string     `db:"status_text"`
	SubmittedAt    time.Time  `db:"submitted_at"`

	Results []TestCaseResult `db:"-"`
}

// NewSubmission creates a new submission shell; per-test collections and
// results are attached by the aggregation step.
func NewSubmission(userID, problemID, sourceCode, language string, stdin []string) *Submission {
	return &Submission{
		ID:          uuid.New(),
		UserID:      userID,
		ProblemID:   problemID,
		SourceCode:  sourceCode,
		Language:    language,
		Stdin:       stdin,
		SubmittedAt: time.Now(),
	}
}

type SubmissionsTable struct {
	ID             string
	UserID         string
	ProblemID      string
	SourceCode     string
	Language       string
	Stdin          string
	Stdout         string
	Stderr         string
	CompileOutputs string
	MemoryKB       string
	TimeSec        string
	StatusText     string
	SubmittedAt    string
}

func GetSubmissionsTable() SubmissionsTable {
	return SubmissionsTable{
		ID:             "id",
		UserID:         "user_id",
		ProblemID:      "problem_id",
		SourceCode:     "source_code",
		Language:       "language",
		Stdin:          "stdin",
		Stdout:         "stdout",
		Stderr:         "stderr",
		CompileOutputs: "compile_outputs",
		MemoryKB:       "memory_kb",
		TimeSec:        "time_sec",
		StatusText:     "status_text",
		SubmittedAt:    "submitted_at",
	}
}

func (t SubmissionsTable) GetTableName() string {
	return "submissions"
}
