package storage

import (
	"fmt"
	"strings"

	"studyhub/internal/config"
)

const (
	BackendMinIO = "minio"
	BackendLocal = "local"
)

// Open builds the byte store selected by sc.Backend.
func Open(sc config.StorageConfig, mc config.MinIOConfig) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(sc.Backend)) {
	case BackendMinIO:
		return NewMinIO(mc)
	case BackendLocal, "":
		ls, err := NewLocalStore(sc.UploadsDir)
		if err != nil {
			return nil, err
		}
		return ls, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
