package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studyhub/internal/logging"
	"studyhub/internal/model"
	"studyhub/internal/repository"
)

const defaultExamLimit = 100

// ExamInput is the payload for creating an exam.
type ExamInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Subject     string  `json:"subject" validate:"required,notblank,max=100"`
	ExamYear    string  `json:"exam_year" validate:"required,notblank,max=10"`
	ExamType    string  `json:"exam_type" validate:"required,notblank,max=50"`
	Description *string `json:"description"`
	FileURL     *string `json:"file_url" validate:"omitempty,url,max=500"`
}

// ExamPatch carries a partial update. Nil fields are left untouched.
type ExamPatch struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	Subject     *string `json:"subject" validate:"omitempty,notblank,max=100"`
	ExamYear    *string `json:"exam_year" validate:"omitempty,notblank,max=10"`
	ExamType    *string `json:"exam_type" validate:"omitempty,notblank,max=50"`
	Description *string `json:"description"`
	FileURL     *string `json:"file_url" validate:"omitempty,url,max=500"`
}

// SolutionInput is the payload for adding a solution to an exam.
type SolutionInput struct {
	QuestionNumber int     `json:"question_number" validate:"required,min=1"`
	Solution       string  `json:"solution" validate:"required,notblank"`
	Explanation    *string `json:"explanation"`
}

// ExamQuery filters an exam listing. Empty strings disable a filter.
type ExamQuery struct {
	Subject  string
	ExamYear string
	ExamType string
	Search   string
	Limit    int
	Offset   int
}

// ExamService manages the exam catalog and its solutions.
type ExamService interface {
	List(ctx context.Context, q ExamQuery) ([]model.Exam, error)
	Get(ctx context.Context, id string) (*model.Exam, error)
	Create(ctx context.Context, in ExamInput) (*model.Exam, error)
	Update(ctx context.Context, id string, patch ExamPatch) (*model.Exam, error)
	// Delete removes the exam together with its solutions.
	Delete(ctx context.Context, id string) error
	Solutions(ctx context.Context, examID string) ([]model.ExamSolution, error)
	AddSolution(ctx context.Context, examID string, in SolutionInput) (*model.ExamSolution, error)
	Statistics(ctx context.Context) (*model.ExamStatistics, error)
}

type examService struct {
	repo repository.ExamRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewExamService(repo repository.ExamRepository, log logrus.FieldLogger) ExamService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &examService{
		repo: repo,
		log:  log.WithField("component", "exam_service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *examService) List(ctx context.Context, q ExamQuery) ([]model.Exam, error) {
	if q.Limit <= 0 {
		q.Limit = defaultExamLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	f := repository.ExamFilter{
		Subject:  strings.TrimSpace(q.Subject),
		ExamYear: strings.TrimSpace(q.ExamYear),
		ExamType: strings.TrimSpace(q.ExamType),
		Search:   strings.TrimSpace(q.Search),
	}
	return s.repo.List(ctx, f, repository.PageQuery{Limit: q.Limit, Offset: q.Offset})
}

func (s *examService) Get(ctx context.Context, id string) (*model.Exam, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return e, nil
}

func (s *examService) Create(ctx context.Context, in ExamInput) (*model.Exam, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	now := s.now()
	e, err := s.repo.Create(ctx, &model.Exam{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Subject:     strings.TrimSpace(in.Subject),
		ExamYear:    strings.TrimSpace(in.ExamYear),
		ExamType:    strings.TrimSpace(in.ExamType),
		Description: in.Description,
		FileURL:     in.FileURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"event": "exam_created", "exam_id": e.ID}).Info("exam created")
	return e, nil
}

func (s *examService) Update(ctx context.Context, id string, patch ExamPatch) (*model.Exam, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		e.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Subject != nil {
		e.Subject = strings.TrimSpace(*patch.Subject)
	}
	if patch.ExamYear != nil {
		e.ExamYear = strings.TrimSpace(*patch.ExamYear)
	}
	if patch.ExamType != nil {
		e.ExamType = strings.TrimSpace(*patch.ExamType)
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.FileURL != nil {
		e.FileURL = patch.FileURL
	}
	e.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *examService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}
	if !ok {
		return ErrNotFound
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"event": "exam_deleted", "exam_id": id}).Info("exam deleted")
	return nil
}

func (s *examService) Solutions(ctx context.Context, examID string) ([]model.ExamSolution, error) {
	if _, err := s.Get(ctx, examID); err != nil {
		return nil, err
	}
	return s.repo.ListSolutions(ctx, examID)
}

func (s *examService) AddSolution(ctx context.Context, examID string, in SolutionInput) (*model.ExamSolution, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, examID); err != nil {
		return nil, err
	}
	sol, err := s.repo.CreateSolution(ctx, &model.ExamSolution{
		ID:             uuid.New().String(),
		ExamID:         examID,
		QuestionNumber: in.QuestionNumber,
		Solution:       in.Solution,
		Explanation:    in.Explanation,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sol, nil
}

func (s *examService) Statistics(ctx context.Context) (*model.ExamStatistics, error) {
	return s.repo.Statistics(ctx)
}
