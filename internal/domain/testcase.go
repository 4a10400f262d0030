package domain

// TestCaseSpec is one (stdin, expected output) pair. Its 1-based position in
// the submitted sequence is the only key correlating it with the engine job
// and later with its result.
type TestCaseSpec struct {
	Stdin          string
	ExpectedOutput string
}

// EngineLanguage is one entry of the engine's language catalog.
type EngineLanguage struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BatchJob is one unit of a batch submission to the engine.
type BatchJob struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
}

// RawJobResult is the engine-reported outcome for one job. Stderr and
// CompileOutput stay nil when the engine reported no value so storage can
// tell "no error" apart from "empty error". MemoryKB is kilobytes, TimeSec
// is seconds, both as reported by the engine.
type RawJobResult struct {
	Token         string
	Status        JobStatus
	StatusText    string
	Stdout        string
	Stderr        *string
	CompileOutput *string
	MemoryKB      *float64
	TimeSec       *float64
}
