package domain

import "testing"

func TestJobStatusFromEngine(t *testing.T) {
	tests := []struct {
		id   int
		want JobStatus
	}{
		{1, StatusInQueue},
		{2, StatusProcessing},
		{3, StatusAccepted},
		{4, StatusWrongAnswer},
		{5, StatusTimeLimitExceeded},
		{6, StatusCompilationError},
		{7, StatusRuntimeError},
		{11, StatusRuntimeError},
		{12, StatusRuntimeError},
		{13, StatusInternalError},
		{14, StatusExecFormatError},
		{0, StatusUnknown},
		{99, StatusUnknown},
	}
	for _, tt := range tests {
		if got := JobStatusFromEngine(tt.id); got != tt.want {
			t.Errorf("JobStatusFromEngine(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestJobStatusIsTerminal(t *testing.T) {
	nonTerminal := []JobStatus{StatusUnknown, StatusInQueue, StatusProcessing}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("%v must not be terminal", s)
		}
	}

	terminal := []JobStatus{
		StatusAccepted, StatusWrongAnswer, StatusTimeLimitExceeded,
		StatusCompilationError, StatusRuntimeError, StatusInternalError,
		StatusExecFormatError,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%v must be terminal", s)
		}
	}
}
