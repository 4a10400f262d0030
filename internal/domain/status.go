package domain

// JobStatus is the typed verdict of one engine job. Engine status codes are
// mapped to this enum at the adapter boundary so downstream logic never
// switches on raw strings.
type JobStatus int

const (
	StatusUnknown JobStatus = iota
	StatusInQueue
	StatusProcessing
	StatusAccepted
	StatusWrongAnswer
	StatusTimeLimitExceeded
	StatusCompilationError
	StatusRuntimeError
	StatusInternalError
	StatusExecFormatError
)

// JobStatusFromEngine maps the engine's numeric status id to a JobStatus.
// Ids follow the Judge0 catalog: 1 queued, 2 processing, 3 accepted,
// 4 wrong answer, 5 TLE, 6 compile error, 7-12 runtime error variants,
// 13 internal error, 14 exec format error.
func JobStatusFromEngine(id int) JobStatus {
	switch {
	case id == 1:
		return StatusInQueue
	case id == 2:
		return StatusProcessing
	case id == 3:
		return StatusAccepted
	case id == 4:
		return StatusWrongAnswer
	case id == 5:
		return StatusTimeLimitExceeded
	case id == 6:
		return StatusCompilationError
	case id >= 7 && id <= 12:
		return StatusRuntimeError
	case id == 13:
		return StatusInternalError
	case id == 14:
		return StatusExecFormatError
	default:
		return StatusUnknown
	}
}

// IsTerminal reports whether the job will not change state again.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusInQueue, StatusProcessing:
		return false
	default:
		return s != StatusUnknown
	}
}

func (s JobStatus) String() string {
	switch s {
	case StatusInQueue:
		return "In Queue"
	case StatusProcessing:
		return "Processing"
	case StatusAccepted:
		return "Accepted"
	case StatusWrongAnswer:
		return "Wrong Answer"
	case StatusTimeLimitExceeded:
		return "Time Limit Exceeded"
	case StatusCompilationError:
		return "Compilation Error"
	case StatusRuntimeError:
		return "Runtime Error"
	case StatusInternalError:
		return "Internal Error"
	case StatusExecFormatError:
		return "Exec Format Error"
	default:
		return "Unknown"
	}
}
