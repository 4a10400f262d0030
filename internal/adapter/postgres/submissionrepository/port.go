// package submissionrepository contains the PostgreSQL implementation of the
// submission repository.
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pacerode/evaluator/internal/core/ports/primary"
	"github.com/pacerode/evaluator/internal/core/ports/secondary"
	"github.com/pacerode/evaluator/internal/domain"
	querybuilder "github.com/pacerode/evaluator/internal/utils"
)

var _ secondary.SubmissionRepository = (*submissionRepo)(nil)

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SubmissionRepository {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// SaveEvaluation stores the submission, its test case results and the solved
// mark in one transaction. The solved mark insert is ON CONFLICT DO NOTHING
// keyed by (user_id, problem_id), so concurrent accepted submissions for the
// same problem never duplicate the mark or raise a uniqueness error.
func (r *submissionRepo) SaveEvaluation(ctx context.Context, submission *domain.Submission, markSolved bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.insertSubmission(ctx, tx, submission); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	if err := r.insertResults(ctx, tx, submission.Results); err != nil {
		return fmt.Errorf("failed to insert test case results: %w", err)
	}

	if markSolved {
		if err := r.upsertSolvedMark(ctx, tx, submission.UserID, submission.ProblemID); err != nil {
			return fmt.Errorf("failed to upsert solved mark: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *submissionRepo) insertSubmission(ctx context.Context, tx *sqlx.Tx, sub *domain.Submission) error {
	subTbl := domain.GetSubmissionsTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).Insert(
		subTbl.ID, subTbl.UserID, subTbl.ProblemID,
		subTbl.SourceCode, subTbl.Language,
		subTbl.Stdin, subTbl.Stdout, subTbl.Stderr,
		subTbl.CompileOutputs, subTbl.MemoryKB, subTbl.TimeSec,
		subTbl.StatusText, subTbl.SubmittedAt,
	).
		Into(subTbl.GetTableName()).
		Values(
			sub.ID, sub.UserID, sub.ProblemID,
			sub.SourceCode, sub.Language,
			pq.Array(sub.Stdin), pq.Array(sub.Stdout), nullStringArray(sub.Stderr),
			nullStringArray(sub.CompileOutputs), nullFloatArray(sub.MemoryKB), nullFloatArray(sub.TimeSec),
			sub.StatusText, sub.SubmittedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *submissionRepo) insertResults(ctx context.Context, tx *sqlx.Tx, results []domain.TestCaseResult) error {
	if len(results) == 0 {
		return nil
	}

	resTbl := domain.GetTestCaseResultsTable()
	qb := querybuilder.NewQueryBuilder(r.schema).Insert(
		resTbl.ID, resTbl.SubmissionID, resTbl.Index, resTbl.Passed,
		resTbl.Stdout, resTbl.ExpectedOutput, resTbl.Stderr, resTbl.CompileOutput,
		resTbl.StatusText, resTbl.MemoryKB, resTbl.TimeSec,
	).Into(resTbl.GetTableName())

	for _, res := range results {
		qb = qb.Values(
			res.ID, res.SubmissionID, res.Index, res.Passed,
			res.Stdout, res.ExpectedOutput, nullString(res.Stderr), nullString(res.CompileOutput),
			res.StatusText, nullFloat(res.MemoryKB), nullFloat(res.TimeSec),
		)
	}

	query, args := qb.Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *submissionRepo) upsertSolvedMark(ctx context.Context, tx *sqlx.Tx, userID, problemID string) error {
	markTbl := domain.GetSolvedMarksTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).Insert(
		markTbl.UserID, markTbl.ProblemID, markTbl.SolvedAt,
	).
		Into(markTbl.GetTableName()).
		Values(userID, problemID, time.Now()).
		OnConflict(markTbl.UserID, markTbl.ProblemID).
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetSubmission loads a submission and its results ordered by test case
// index. Returns (nil, nil) when the submission does not exist.
func (r *submissionRepo) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	subTbl := domain.GetSubmissionsTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			subTbl.ID, subTbl.UserID, subTbl.ProblemID,
			subTbl.SourceCode, subTbl.Language,
			subTbl.Stdin, subTbl.Stdout, subTbl.Stderr,
			subTbl.CompileOutputs, subTbl.MemoryKB, subTbl.TimeSec,
			subTbl.StatusText, subTbl.SubmittedAt,
		).
		From(subTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", subTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var (
		sub            domain.Submission
		stdin, stdout  pq.StringArray
		stderr         []sql.NullString
		compileOutputs []sql.NullString
		memoryKB       []sql.NullFloat64
		timeSec        []sql.NullFloat64
	)
	row := r.db.QueryRowxContext(ctx, query, args...)
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID,
		&sub.SourceCode, &sub.Language,
		&stdin, &stdout, pq.Array(&stderr),
		pq.Array(&compileOutputs), pq.Array(&memoryKB), pq.Array(&timeSec),
		&sub.StatusText, &sub.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sub.Stdin = stdin
	sub.Stdout = stdout
	sub.Stderr = fromNullStrings(stderr)
	sub.CompileOutputs = fromNullStrings(compileOutputs)
	sub.MemoryKB = fromNullFloats(memoryKB)
	sub.TimeSec = fromNullFloats(timeSec)

	results, err := r.getResults(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Results = results

	return &sub, nil
}

func (r *submissionRepo) getResults(ctx context.Context, submissionID uuid.UUID) ([]domain.TestCaseResult, error) {
	resTbl := domain.GetTestCaseResultsTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			resTbl.ID, resTbl.SubmissionID, resTbl.Index, resTbl.Passed,
			resTbl.Stdout, resTbl.ExpectedOutput, resTbl.Stderr, resTbl.CompileOutput,
			resTbl.StatusText, resTbl.MemoryKB, resTbl.TimeSec,
		).
		From(resTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", resTbl.SubmissionID), submissionID).
		OrderBy(resTbl.Index, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TestCaseResult
	for rows.Next() {
		var res domain.TestCaseResult
		if err := rows.StructScan(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullStringArray(values []*string) interface{} {
	arr := make([]sql.NullString, len(values))
	for i, v := range values {
		arr[i] = nullString(v)
	}
	return pq.Array(arr)
}

func nullFloatArray(values []*float64) interface{} {
	arr := make([]sql.NullFloat64, len(values))
	for i, v := range values {
		arr[i] = nullFloat(v)
	}
	return pq.Array(arr)
}

func fromNullStrings(arr []sql.NullString) []*string {
	out := make([]*string, len(arr))
	for i, v := range arr {
		if v.Valid {
			s := v.String
			out[i] = &s
		}
	}
	return out
}

func fromNullFloats(arr []sql.NullFloat64) []*float64 {
	out := make([]*float64, len(arr))
	for i, v := range arr {
		if v.Valid {
			f := v.Float64
			out[i] = &f
		}
	}
	return out
}
