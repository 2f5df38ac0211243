package repository

import (
	"context"
	"time"

	"studyhub/internal/model"
)

// UploadFilter narrows an upload listing. Empty fields are ignored.
type UploadFilter struct {
	Subject string
	Grade   string
	Search  string
}

// UploadRepository defines data access for upload records using SQL queries only.
type UploadRepository interface {
	// Create inserts a new upload record and returns the stored row.
	Create(ctx context.Context, u *model.Upload) (*model.Upload, error)

	// FindByID returns an upload by its ID or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Upload, error)

	// List returns a page of matching uploads, newest first, with the total count of matches.
	List(ctx context.Context, f UploadFilter, pq PageQuery) (*PageResult[model.Upload], error)

	// UpdateStatus sets status, extracted content and updated_at in one statement.
	// It returns sql.ErrNoRows when the row does not exist.
	UpdateStatus(ctx context.Context, id string, status model.UploadStatus, content *string, updatedAt time.Time) (*model.Upload, error)

	// Delete removes an upload row. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// CountByStatus returns the number of rows per status in a single query.
	CountByStatus(ctx context.Context) (map[model.UploadStatus]int, error)
}
