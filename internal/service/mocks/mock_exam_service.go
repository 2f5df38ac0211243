package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
	"studyhub/internal/service"
)

type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) List(ctx context.Context, q service.ExamQuery) ([]model.Exam, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Exam), args.Error(1)
}

func (m *MockExamService) Get(ctx context.Context, id string) (*model.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamService) Create(ctx context.Context, in service.ExamInput) (*model.Exam, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamService) Update(ctx context.Context, id string, patch service.ExamPatch) (*model.Exam, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exam), args.Error(1)
}

func (m *MockExamService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExamService) Solutions(ctx context.Context, examID string) ([]model.ExamSolution, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExamSolution), args.Error(1)
}

func (m *MockExamService) AddSolution(ctx context.Context, examID string, in service.SolutionInput) (*model.ExamSolution, error) {
	args := m.Called(ctx, examID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSolution), args.Error(1)
}

func (m *MockExamService) Statistics(ctx context.Context) (*model.ExamStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamStatistics), args.Error(1)
}
