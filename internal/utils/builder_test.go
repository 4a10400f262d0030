package querybuilder

import (
	"reflect"
	"testing"
)

func TestBuildInsertWithConflictClause(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("user_id", "problem_id", "solved_at").
		Into("solved_marks").
		Values("user-1", "problem-9", "now").
		OnConflict("user_id", "problem_id").
		DoNothing().
		Build()

	want := "INSERT INTO public.solved_marks (user_id, problem_id, solved_at) VALUES (?, ?, ?) ON CONFLICT (user_id, problem_id) DO NOTHING"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"user-1", "problem-9", "now"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildMultiRowInsert(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("id", "idx").
		Into("test_case_results").
		Values("a", 1).
		Values("b", 2).
		Build()

	want := "INSERT INTO public.test_case_results (id, idx) VALUES (?, ?), (?, ?)"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"a", 1, "b", 2}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildInsertRejectsRaggedRows(t *testing.T) {
	query, _ := NewQueryBuilder("public").
		Insert("id", "idx").
		Into("test_case_results").
		Values("a", 1).
		Values("b").
		Build()

	if query != "" {
		t.Errorf("ragged rows must not build, got %q", query)
	}
}

func TestBuildSelectWithWhereAndOrder(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Select("id", "passed").
		From("test_case_results").
		Where("submission_id = ?", "sub-1").
		And("passed = ?", true).
		OrderBy("idx", true).
		Build()

	want := "SELECT id, passed FROM public.test_case_results WHERE submission_id = ? AND passed = ? ORDER BY idx ASC"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"sub-1", true}) {
		t.Errorf("args = %v", args)
	}
}
