package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studyhub/internal/logging"
	"studyhub/internal/model"
	"studyhub/internal/repository"
	repoMocks "studyhub/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func TestExamService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		query      ExamQuery
		wantFilter repository.ExamFilter
		wantPage   repository.PageQuery
	}{
		{
			name:       "defaults",
			query:      ExamQuery{},
			wantFilter: repository.ExamFilter{},
			wantPage:   repository.PageQuery{Limit: 100, Offset: 0},
		},
		{
			name:       "filters are trimmed",
			query:      ExamQuery{Subject: " physics ", ExamYear: "2023", ExamType: "final", Search: " waves", Limit: 5, Offset: 10},
			wantFilter: repository.ExamFilter{Subject: "physics", ExamYear: "2023", ExamType: "final", Search: "waves"},
			wantPage:   repository.PageQuery{Limit: 5, Offset: 10},
		},
		{
			name:       "negative offset",
			query:      ExamQuery{Limit: -1, Offset: -3},
			wantFilter: repository.ExamFilter{},
			wantPage:   repository.PageQuery{Limit: 100, Offset: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockExamRepository)
			svc := NewExamService(mRepo, logging.Discard())

			mRepo.On("List", ctx, tt.wantFilter, tt.wantPage).Return([]model.Exam{{ID: "e1"}}, nil)

			items, err := svc.List(ctx, tt.query)

			require.NoError(t, err)
			assert.Len(t, items, 1)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestExamService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		setup   func(m *repoMocks.MockExamRepository)
		wantErr error
	}{
		{
			name:  "found",
			id:    "e1",
			setup: func(m *repoMocks.MockExamRepository) { m.On("FindByID", ctx, "e1").Return(&model.Exam{ID: "e1"}, nil) },
		},
		{
			name:    "empty id",
			id:      "",
			setup:   func(m *repoMocks.MockExamRepository) {},
			wantErr: ErrIDRequired,
		},
		{
			name:    "no rows",
			id:      "e2",
			setup:   func(m *repoMocks.MockExamRepository) { m.On("FindByID", ctx, "e2").Return(nil, sql.ErrNoRows) },
			wantErr: ErrNotFound,
		},
		{
			name: "malformed uuid",
			id:   "not-a-uuid",
			setup: func(m *repoMocks.MockExamRepository) {
				m.On("FindByID", ctx, "not-a-uuid").Return(nil, &pgconn.PgError{Code: "22P02"})
			},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockExamRepository)
			svc := NewExamService(mRepo, logging.Discard())
			tt.setup(mRepo)

			e, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, e)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, e.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestExamService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())

		mRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Exam) bool {
			return e.ID != "" && e.Title == "Midterm" && e.Subject == "Physics" &&
				e.ExamYear == "2024" && e.ExamType == "midterm" && !e.CreatedAt.IsZero()
		})).Return(&model.Exam{ID: "e1", Title: "Midterm"}, nil)

		e, err := svc.Create(ctx, ExamInput{Title: " Midterm ", Subject: "Physics", ExamYear: "2024", ExamType: "midterm"})

		require.NoError(t, err)
		assert.Equal(t, "e1", e.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())

		_, err := svc.Create(ctx, ExamInput{Title: "   ", FileURL: strPtr("not a url")})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "title")
		assert.Contains(t, verr.Fields, "subject")
		assert.Contains(t, verr.Fields, "exam_year")
		assert.Contains(t, verr.Fields, "exam_type")
		assert.Contains(t, verr.Fields, "file_url")
		assert.Equal(t, "this field cannot be blank", verr.Fields["title"])
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestExamService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())

		mRepo.On("FindByID", ctx, "e1").Return(&model.Exam{
			ID: "e1", Title: "Old", Subject: "Math", ExamYear: "2020", ExamType: "final",
		}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(e *model.Exam) bool {
			return e.Title == "New" && e.Subject == "Math" && e.ExamYear == "2020" &&
				e.Description != nil && *e.Description == "desc" && !e.UpdatedAt.IsZero()
		})).Return(&model.Exam{ID: "e1", Title: "New"}, nil)

		e, err := svc.Update(ctx, "e1", ExamPatch{Title: strPtr("New"), Description: strPtr("desc")})

		require.NoError(t, err)
		assert.Equal(t, "New", e.Title)
		mRepo.AssertExpectations(t)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())

		_, err := svc.Update(ctx, "e1", ExamPatch{Title: strPtr(" ")})

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", ExamPatch{})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExamService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		setup   func(m *repoMocks.MockExamRepository)
		wantErr error
	}{
		{
			name:  "deleted",
			id:    "e1",
			setup: func(m *repoMocks.MockExamRepository) { m.On("Delete", ctx, "e1").Return(true, nil) },
		},
		{
			name:    "missing",
			id:      "e2",
			setup:   func(m *repoMocks.MockExamRepository) { m.On("Delete", ctx, "e2").Return(false, nil) },
			wantErr: ErrNotFound,
		},
		{
			name:    "empty id",
			setup:   func(m *repoMocks.MockExamRepository) {},
			wantErr: ErrIDRequired,
		},
		{
			name:    "repository error",
			id:      "e3",
			setup:   func(m *repoMocks.MockExamRepository) { m.On("Delete", ctx, "e3").Return(false, errors.New("db fail")) },
			wantErr: errors.New("db fail"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockExamRepository)
			svc := NewExamService(mRepo, logging.Discard())
			tt.setup(mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else if errors.Is(tt.wantErr, ErrNotFound) || errors.Is(tt.wantErr, ErrIDRequired) {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestExamService_Solutions(t *testing.T) {
	ctx := context.Background()

	t.Run("lists for existing exam", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())
		mRepo.On("FindByID", ctx, "e1").Return(&model.Exam{ID: "e1"}, nil)
		mRepo.On("ListSolutions", ctx, "e1").Return([]model.ExamSolution{{QuestionNumber: 1}, {QuestionNumber: 2}}, nil)

		sols, err := svc.Solutions(ctx, "e1")

		require.NoError(t, err)
		assert.Len(t, sols, 2)
	})

	t.Run("unknown exam", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())
		mRepo.On("FindByID", ctx, "e9").Return(nil, sql.ErrNoRows)

		_, err := svc.Solutions(ctx, "e9")

		assert.ErrorIs(t, err, ErrNotFound)
		mRepo.AssertNotCalled(t, "ListSolutions", mock.Anything, mock.Anything)
	})
}

func TestExamService_AddSolution(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())
		mRepo.On("FindByID", ctx, "e1").Return(&model.Exam{ID: "e1"}, nil)
		mRepo.On("CreateSolution", ctx, mock.MatchedBy(func(s *model.ExamSolution) bool {
			return s.ExamID == "e1" && s.QuestionNumber == 3 && s.Solution == "x = 2" && s.ID != ""
		})).Return(&model.ExamSolution{ID: "s1", ExamID: "e1", QuestionNumber: 3}, nil)

		sol, err := svc.AddSolution(ctx, "e1", SolutionInput{QuestionNumber: 3, Solution: "x = 2"})

		require.NoError(t, err)
		assert.Equal(t, "s1", sol.ID)
	})

	t.Run("duplicate question number", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())
		mRepo.On("FindByID", ctx, "e1").Return(&model.Exam{ID: "e1"}, nil)
		mRepo.On("CreateSolution", ctx, mock.Anything).Return(nil, &pgconn.PgError{Code: "23505"})

		_, err := svc.AddSolution(ctx, "e1", SolutionInput{QuestionNumber: 1, Solution: "a"})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("invalid input", func(t *testing.T) {
		mRepo := new(repoMocks.MockExamRepository)
		svc := NewExamService(mRepo, logging.Discard())

		_, err := svc.AddSolution(ctx, "e1", SolutionInput{QuestionNumber: 0, Solution: ""})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "question_number")
		assert.Contains(t, verr.Fields, "solution")
	})
}

func TestExamService_Statistics(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockExamRepository)
	svc := NewExamService(mRepo, logging.Discard())
	want := &model.ExamStatistics{TotalExams: 4, UniqueSubjects: 2, UniqueExamTypes: 2, UniqueExamYears: 3}
	mRepo.On("Statistics", ctx).Return(want, nil)

	got, err := svc.Statistics(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "bad", "a": "worse"}}
	assert.Equal(t, "validation failed: a: worse; b: bad", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}
