package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, u *model.Upload) (*model.Upload, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Upload), args.Error(1)
}

func (m *MockUploadRepository) FindByID(ctx context.Context, id string) (*model.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Upload), args.Error(1)
}

func (m *MockUploadRepository) List(ctx context.Context, f repository.UploadFilter, pq repository.PageQuery) (*repository.PageResult[model.Upload], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Upload]), args.Error(1)
}

func (m *MockUploadRepository) UpdateStatus(ctx context.Context, id string, status model.UploadStatus, content *string, updatedAt time.Time) (*model.Upload, error) {
	args := m.Called(ctx, id, status, content, updatedAt)
	if f, ok := args.Get(0).(func(context.Context, string, model.UploadStatus, *string, time.Time) *model.Upload); ok {
		return f(ctx, id, status, content, updatedAt), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Upload), args.Error(1)
}

func (m *MockUploadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUploadRepository) CountByStatus(ctx context.Context) (map[model.UploadStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.UploadStatus]int), args.Error(1)
}
