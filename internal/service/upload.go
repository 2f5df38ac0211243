package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"studyhub/internal/extractor"
	"studyhub/internal/logging"
	"studyhub/internal/model"
	"studyhub/internal/repository"
	"studyhub/internal/storage"
)

const (
	defaultContentType = "application/octet-stream"
	uploadKeyPrefix    = "uploads"
	maxExtLen          = 16
)

// UploadListResult is the service-level DTO for paginated uploads.
type UploadListResult struct {
	Items []model.Upload `json:"data"`
	Total int            `json:"total"`
}

// UploadMeta is the optional catalog information attached to an upload.
type UploadMeta struct {
	Title       string `json:"title" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
	Subject     string `json:"subject" validate:"omitempty,oneof=Math English Science History Computer"`
	Grade       string `json:"grade" validate:"omitempty,oneof=Grade9 Grade10 Grade11 Grade12"`
}

// UploadQuery filters an upload listing. Empty strings disable a filter.
type UploadQuery struct {
	Subject string
	Grade   string
	Search  string
	Limit   int
	Offset  int
}

// UploadService drives the upload → store → extract → status pipeline.
type UploadService interface {
	// Upload stores the bytes, then records metadata with status uploaded.
	// The stored object is removed again if the record cannot be saved.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64, meta UploadMeta) (*model.Upload, error)

	// Process re-reads the stored bytes and extracts their text. Extraction problems
	// are reflected in the returned record's status, never as an error.
	Process(ctx context.Context, id string) (*model.Upload, error)

	// Content returns the extracted text of a completed upload.
	Content(ctx context.Context, id string) (string, error)

	Get(ctx context.Context, id string) (*model.Upload, error)
	List(ctx context.Context, q UploadQuery) (*UploadListResult, error)

	// Delete removes the stored bytes and then the record.
	Delete(ctx context.Context, id string) error

	Statistics(ctx context.Context) (*model.UploadStatistics, error)

	// Open streams the stored bytes of an upload.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Upload, error)

	// DownloadURL returns a time-limited direct link, or storage.ErrPresignUnsupported.
	DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)
}

type uploadService struct {
	store       storage.Storage
	repo        repository.UploadRepository
	log         logrus.FieldLogger
	autoProcess bool

	extract func(data []byte, ext string) (string, error)
	now     func() time.Time
	group   singleflight.Group
}

// NewUploadService constructs an UploadService. When autoProcess is set, Upload
// runs Process before returning.
func NewUploadService(store storage.Storage, repo repository.UploadRepository, log logrus.FieldLogger, autoProcess bool) UploadService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &uploadService{
		store:       store,
		repo:        repo,
		log:         log.WithField("component", "upload_service"),
		autoProcess: autoProcess,
		extract:     extractor.ExtractBytes,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// storageKey derives the object key from the id. Only a sanitized extension of
// the client supplied name survives.
func storageKey(id, filename string) string {
	return path.Join(uploadKeyPrefix, id+sanitizeExt(filename))
}

func sanitizeExt(filename string) string {
	// path.Ext would accept a backslash separated name as-is
	name := filename[strings.LastIndexAny(filename, `/\`)+1:]
	ext := strings.ToLower(path.Ext(name))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64, meta UploadMeta) (*model.Upload, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if strings.TrimSpace(filename) == "" {
		return nil, newFieldError("filename", "filename is a required field")
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Description = strings.TrimSpace(meta.Description)
	if err := validateStruct(meta); err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	if size < 0 {
		size = -1
	}

	id := uuid.New().String()
	key := storageKey(id, filename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := s.now()
	u := &model.Upload{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        objInfo.Size,
		Status:      model.StatusUploaded,
		StoragePath: key,
		Title:       meta.Title,
		Description: meta.Description,
		Subject:     meta.Subject,
		Grade:       meta.Grade,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, u)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
		"event":     "upload_stored",
		"upload_id": stored.ID,
		"size":      stored.Size,
	}).Info("upload stored")

	if !s.autoProcess {
		return stored, nil
	}
	processed, err := s.Process(ctx, stored.ID)
	if err != nil {
		logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"event": "auto_process_failed", "upload_id": stored.ID}).WithError(err).Error("automatic processing failed")
		return stored, nil
	}
	return processed, nil
}

// Process collapses concurrent calls for the same id into one run.
func (s *uploadService) Process(ctx context.Context, id string) (*model.Upload, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	// Callers sharing a run must not be failed by the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(id, func() (any, error) {
		return s.process(shared, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Upload), nil
}

func (s *uploadService) process(ctx context.Context, id string) (*model.Upload, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	u, err = s.repo.UpdateStatus(ctx, id, model.StatusProcessing, nil, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark processing: %w", mapRepoErr(err))
	}

	start := time.Now()
	text, xerr := s.extractStored(ctx, u)

	status, content := model.StatusCompleted, &text
	if xerr != nil {
		status, content = model.StatusFailed, nil
		logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
			"event":     "extraction_failed",
			"upload_id": id,
		}).WithError(xerr).Warn("extraction failed")
	}

	u, err = s.repo.UpdateStatus(ctx, id, status, content, s.now())
	if err != nil && status == model.StatusCompleted {
		// The text itself may be unstorable; settle on failed rather than leave the row processing.
		logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
			"event":     "content_persist_failed",
			"upload_id": id,
		}).WithError(err).Warn("storing extracted content failed")
		status = model.StatusFailed
		u, err = s.repo.UpdateStatus(ctx, id, status, nil, s.now())
	}
	if err != nil {
		return nil, fmt.Errorf("mark %s: %w", status, mapRepoErr(err))
	}
	uploadsProcessed.WithLabelValues(string(status)).Inc()

	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
		"event":       "upload_processed",
		"upload_id":   id,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("upload processed")
	return u, nil
}

func (s *uploadService) extractStored(ctx context.Context, u *model.Upload) (string, error) {
	if !extractor.IsSupported(u.StoragePath) {
		return "", &extractor.UnsupportedFormatError{Ext: extractor.Ext(u.StoragePath)}
	}
	rc, _, err := s.store.Get(ctx, u.StoragePath)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return s.extract(data, path.Ext(u.StoragePath))
}

func (s *uploadService) Content(ctx context.Context, id string) (string, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if u.Status != model.StatusCompleted || u.ExtractedContent == nil {
		return "", ErrContentUnavailable
	}
	return *u.ExtractedContent, nil
}

// List returns paginated uploads without exposing repository types.
func (s *uploadService) List(ctx context.Context, q UploadQuery) (*UploadListResult, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	f := repository.UploadFilter{
		Subject: strings.TrimSpace(q.Subject),
		Grade:   strings.TrimSpace(q.Grade),
		Search:  strings.TrimSpace(q.Search),
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return nil, err
	}
	return &UploadListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *uploadService) Get(ctx context.Context, id string) (*model.Upload, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

// Delete removes an upload from storage, then deletes its record.
func (s *uploadService) Delete(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, u.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"event": "upload_deleted", "upload_id": id}).Info("upload deleted")
	return nil
}

func (s *uploadService) Statistics(ctx context.Context) (*model.UploadStatistics, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st := &model.UploadStatistics{
		Uploaded:   counts[model.StatusUploaded],
		Processing: counts[model.StatusProcessing],
		Completed:  counts[model.StatusCompleted],
		Failed:     counts[model.StatusFailed],
	}
	st.Total = st.Uploaded + st.Processing + st.Completed + st.Failed
	return st, nil
}

func (s *uploadService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Upload, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, u.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return rc, u, nil
}

func (s *uploadService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, u.StoragePath, expiry)
}
