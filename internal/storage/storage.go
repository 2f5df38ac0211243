// Package storage contains byte store abstractions for upload payloads.
// Backends are an S3-compatible object store and a local directory.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned by Get when no object exists under the key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrPresignUnsupported is returned by backends that cannot hand out direct download URLs.
	ErrPresignUnsupported = errors.New("presigned urls not supported by this backend")
	// ErrInvalidKey is returned for keys that would escape the store's namespace.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a path-addressable byte store keyed by opaque slash-separated keys.
type Storage interface {
	// Put writes the reader's content under key. ObjectInfo.Size is the number of bytes stored.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns the object's content as a streaming reader, or ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes an object by key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL, or ErrPresignUnsupported.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
