package domain

import "time"

// SolvedMark records that a user has fully passed a problem at least once.
// At most one row exists per (user, problem) pair; repeated accepted
// submissions are absorbed by an insert-or-no-op upsert.
type SolvedMark struct {
	UserID    string    `db:"user_id"`
	ProblemID string    `db:"problem_id"`
	SolvedAt  time.Time `db:"solved_at"`
}

type SolvedMarksTable struct {
	UserID    string
	ProblemID string
	SolvedAt  string
}

func GetSolvedMarksTable() SolvedMarksTable {
	return SolvedMarksTable{
		UserID:    "user_id",
		ProblemID: "problem_id",
		SolvedAt:  "solved_at",
	}
}

func (t SolvedMarksTable) GetTableName() string {
	return "solved_marks"
}
