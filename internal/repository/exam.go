package repository

import (
	"context"

	"studyhub/internal/model"
)

// ExamFilter narrows an exam listing. Empty fields are ignored.
type ExamFilter struct {
	Subject  string
	ExamYear string
	ExamType string
	Search   string
}

// ExamRepository defines data access for exams and their solutions.
type ExamRepository interface {
	Create(ctx context.Context, e *model.Exam) (*model.Exam, error)
	FindByID(ctx context.Context, id string) (*model.Exam, error)
	List(ctx context.Context, f ExamFilter, pq PageQuery) ([]model.Exam, error)
	// Update writes every mutable column of e and returns the stored row.
	Update(ctx context.Context, e *model.Exam) (*model.Exam, error)
	// Delete removes the exam and all of its solutions in one transaction.
	// It reports whether an exam row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	Statistics(ctx context.Context) (*model.ExamStatistics, error)

	CreateSolution(ctx context.Context, s *model.ExamSolution) (*model.ExamSolution, error)
	// ListSolutions returns the solutions of an exam ordered by question number.
	ListSolutions(ctx context.Context, examID string) ([]model.ExamSolution, error)
}
