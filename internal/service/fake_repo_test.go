package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

// memUploadRepo is an in-memory UploadRepository used by pipeline tests.
type memUploadRepo struct {
	mu   sync.Mutex
	rows map[string]model.Upload
}

func newMemUploadRepo() *memUploadRepo {
	return &memUploadRepo{rows: make(map[string]model.Upload)}
}

func (r *memUploadRepo) Create(_ context.Context, u *model.Upload) (*model.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *memUploadRepo) FindByID(_ context.Context, id string) (*model.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r *memUploadRepo) List(_ context.Context, f repository.UploadFilter, pq repository.PageQuery) (*repository.PageResult[model.Upload], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.Upload, 0, len(r.rows))
	for _, u := range r.rows {
		if f.Subject != "" && u.Subject != f.Subject || f.Grade != "" && u.Grade != f.Grade {
			continue
		}
		if f.Search != "" && !containsFold(u.Title+" "+u.Description+" "+u.Filename, f.Search) {
			continue
		}
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	total := len(items)
	if pq.Offset > len(items) {
		pq.Offset = len(items)
	}
	items = items[pq.Offset:]
	if pq.Limit < len(items) {
		items = items[:pq.Limit]
	}
	return &repository.PageResult[model.Upload]{Items: items, Total: total}, nil
}

func (r *memUploadRepo) UpdateStatus(_ context.Context, id string, status model.UploadStatus, content *string, updatedAt time.Time) (*model.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.Status = status
	u.ExtractedContent = nil
	if content != nil {
		c := *content
		u.ExtractedContent = &c
	}
	u.UpdatedAt = updatedAt
	r.rows[id] = u
	return &u, nil
}

func (r *memUploadRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memUploadRepo) CountByStatus(context.Context) (map[model.UploadStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[model.UploadStatus]int)
	for _, u := range r.rows {
		out[u.Status]++
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
