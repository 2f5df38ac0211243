package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

const (
	examColumns     = `id, title, subject, exam_year, exam_type, description, file_url, created_at, updated_at`
	solutionColumns = `id, exam_id, question_number, solution, explanation, created_at`
)

// ExamPostgres is a PostgreSQL implementation of repository.ExamRepository.
type ExamPostgres struct {
	db *sql.DB
}

func NewExamPostgres(db *sql.DB) *ExamPostgres {
	return &ExamPostgres{db: db}
}

var _ repository.ExamRepository = (*ExamPostgres)(nil)

func scanExam(row rowScanner) (*model.Exam, error) {
	var (
		e           model.Exam
		description sql.NullString
		fileURL     sql.NullString
	)
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Subject,
		&e.ExamYear,
		&e.ExamType,
		&description,
		&fileURL,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Description = nullableString(description)
	e.FileURL = nullableString(fileURL)
	return &e, nil
}

func scanSolution(row rowScanner) (*model.ExamSolution, error) {
	var (
		s           model.ExamSolution
		explanation sql.NullString
	)
	if err := row.Scan(&s.ID, &s.ExamID, &s.QuestionNumber, &s.Solution, &explanation, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Explanation = nullableString(explanation)
	return &s, nil
}

func (r *ExamPostgres) Create(ctx context.Context, e *model.Exam) (*model.Exam, error) {
	const q = `
		INSERT INTO exams (id, title, subject, exam_year, exam_type, description, file_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + examColumns
	return scanExam(r.db.QueryRowContext(ctx, q,
		e.ID, e.Title, e.Subject, e.ExamYear, e.ExamType,
		toNullString(e.Description), toNullString(e.FileURL),
		e.CreatedAt, e.UpdatedAt,
	))
}

func (r *ExamPostgres) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	const q = `SELECT ` + examColumns + ` FROM exams WHERE id = $1`
	return scanExam(r.db.QueryRowContext(ctx, q, id))
}

// List applies the non-empty filter fields as ILIKE/equality predicates joined by AND.
func (r *ExamPostgres) List(ctx context.Context, f repository.ExamFilter, pq repository.PageQuery) ([]model.Exam, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Subject != "" {
		where = append(where, "subject ILIKE "+arg(likePattern(f.Subject)))
	}
	if f.ExamYear != "" {
		where = append(where, "exam_year = "+arg(f.ExamYear))
	}
	if f.ExamType != "" {
		where = append(where, "exam_type ILIKE "+arg(likePattern(f.ExamType)))
	}
	if f.Search != "" {
		p := arg(likePattern(f.Search))
		where = append(where, fmt.Sprintf("(title ILIKE %s OR subject ILIKE %s OR description ILIKE %s)", p, p, p))
	}

	q := `SELECT ` + examColumns + ` FROM exams`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ` + arg(pq.Limit) + ` OFFSET ` + arg(pq.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Exam, 0)
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *ExamPostgres) Update(ctx context.Context, e *model.Exam) (*model.Exam, error) {
	const q = `
		UPDATE exams
		SET title = $2, subject = $3, exam_year = $4, exam_type = $5, description = $6, file_url = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + examColumns
	return scanExam(r.db.QueryRowContext(ctx, q,
		e.ID, e.Title, e.Subject, e.ExamYear, e.ExamType,
		toNullString(e.Description), toNullString(e.FileURL), e.UpdatedAt,
	))
}

// Delete removes the solutions before the exam so no solution outlives its parent.
func (r *ExamPostgres) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exam_solutions WHERE exam_id = $1`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ExamPostgres) Statistics(ctx context.Context) (*model.ExamStatistics, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(DISTINCT subject),
		       COUNT(DISTINCT exam_type),
		       COUNT(DISTINCT exam_year)
		FROM exams`
	var s model.ExamStatistics
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.TotalExams, &s.UniqueSubjects, &s.UniqueExamTypes, &s.UniqueExamYears); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ExamPostgres) CreateSolution(ctx context.Context, s *model.ExamSolution) (*model.ExamSolution, error) {
	const q = `
		INSERT INTO exam_solutions (id, exam_id, question_number, solution, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + solutionColumns
	return scanSolution(r.db.QueryRowContext(ctx, q,
		s.ID, s.ExamID, s.QuestionNumber, s.Solution, toNullString(s.Explanation), s.CreatedAt,
	))
}

func (r *ExamPostgres) ListSolutions(ctx context.Context, examID string) ([]model.ExamSolution, error) {
	const q = `SELECT ` + solutionColumns + ` FROM exam_solutions WHERE exam_id = $1 ORDER BY question_number`
	rows, err := r.db.QueryContext(ctx, q, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ExamSolution, 0)
	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring ILIKE match with wildcards in s escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
