package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(ctx context.Context, e *model.Exam) (*model.Exam, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamRepository) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamRepository) List(ctx context.Context, f repository.ExamFilter, pq repository.PageQuery) ([]model.Exam, error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Exam), args.Error(1)
}

func (m *MockExamRepository) Update(ctx context.Context, e *model.Exam) (*model.Exam, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockExamRepository) Statistics(ctx context.Context) (*model.ExamStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamStatistics), args.Error(1)
}

func (m *MockExamRepository) CreateSolution(ctx context.Context, s *model.ExamSolution) (*model.ExamSolution, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSolution), args.Error(1)
}

func (m *MockExamRepository) ListSolutions(ctx context.Context, examID string) ([]model.ExamSolution, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExamSolution), args.Error(1)
}
