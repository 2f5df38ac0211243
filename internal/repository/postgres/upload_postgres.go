package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

const uploadColumns = `id, filename, content_type, size, status, storage_path, extracted_content, title, description, subject, grade, created_at, updated_at`

// UploadPostgres is a PostgreSQL implementation of repository.UploadRepository.
type UploadPostgres struct {
	db *sql.DB
}

// NewUploadPostgres creates a new UploadPostgres repository.
func NewUploadPostgres(db *sql.DB) *UploadPostgres {
	return &UploadPostgres{db: db}
}

var _ repository.UploadRepository = (*UploadPostgres)(nil)

func scanUpload(row rowScanner) (*model.Upload, error) {
	var (
		u       model.Upload
		status  string
		content sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&u.Filename,
		&u.ContentType,
		&u.Size,
		&status,
		&u.StoragePath,
		&content,
		&u.Title,
		&u.Description,
		&u.Subject,
		&u.Grade,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Status = model.UploadStatus(status)
	if !u.Status.Valid() {
		return nil, fmt.Errorf("upload %s: unknown status %q", u.ID, status)
	}
	u.ExtractedContent = nullableString(content)
	return &u, nil
}

// Create inserts a new upload row and returns the stored record.
func (r *UploadPostgres) Create(ctx context.Context, u *model.Upload) (*model.Upload, error) {
	const q = `
		INSERT INTO uploads (id, filename, content_type, size, status, storage_path, extracted_content, title, description, subject, grade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + uploadColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Filename,
		u.ContentType,
		u.Size,
		string(u.Status),
		u.StoragePath,
		toNullString(u.ExtractedContent),
		u.Title,
		u.Description,
		u.Subject,
		u.Grade,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return scanUpload(row)
}

// FindByID fetches a single upload by its ID.
func (r *UploadPostgres) FindByID(ctx context.Context, id string) (*model.Upload, error) {
	const q = `SELECT ` + uploadColumns + ` FROM uploads WHERE id = $1`
	return scanUpload(r.db.QueryRowContext(ctx, q, id))
}

// List returns matching uploads using LIMIT/OFFSET pagination. The count query
// shares the WHERE clause so Total describes the filtered set.
func (r *UploadPostgres) List(ctx context.Context, f repository.UploadFilter, pq repository.PageQuery) (*repository.PageResult[model.Upload], error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Subject != "" {
		where = append(where, "subject = "+arg(f.Subject))
	}
	if f.Grade != "" {
		where = append(where, "grade = "+arg(f.Grade))
	}
	if f.Search != "" {
		p := arg(likePattern(f.Search))
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR filename ILIKE %s)", p, p, p))
	}

	cond := ""
	if len(where) > 0 {
		cond = ` WHERE ` + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + uploadColumns + ` FROM uploads` + cond +
		` ORDER BY created_at DESC, id DESC LIMIT ` + arg(pq.Limit) + ` OFFSET ` + arg(pq.Offset)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Upload, 0)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Upload]{Items: items, Total: total}, nil
}

// UpdateStatus writes status and content together so the row never holds content outside "completed".
func (r *UploadPostgres) UpdateStatus(ctx context.Context, id string, status model.UploadStatus, content *string, updatedAt time.Time) (*model.Upload, error) {
	const q = `
		UPDATE uploads
		SET status = $2, extracted_content = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + uploadColumns
	return scanUpload(r.db.QueryRowContext(ctx, q, id, string(status), toNullString(content), updatedAt))
}

// Delete removes an upload by ID. It does not return an error if the row does not exist.
func (r *UploadPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM uploads WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// CountByStatus groups all rows by status in one statement so the counts are mutually consistent.
func (r *UploadPostgres) CountByStatus(ctx context.Context) (map[model.UploadStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM uploads GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.UploadStatus]int, len(model.UploadStatuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[model.UploadStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
