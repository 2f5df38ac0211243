package model

import "time"

// UploadStatus is the processing lifecycle stage of an upload.
type UploadStatus string

const (
	StatusUploaded   UploadStatus = "uploaded"
	StatusProcessing UploadStatus = "processing"
	StatusCompleted  UploadStatus = "completed"
	StatusFailed     UploadStatus = "failed"
)

// UploadStatuses lists every valid status in lifecycle order.
var UploadStatuses = []UploadStatus{StatusUploaded, StatusProcessing, StatusCompleted, StatusFailed}

// Valid reports whether s is one of the defined statuses.
func (s UploadStatus) Valid() bool {
	for _, v := range UploadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Upload is a user-submitted file plus its tracked metadata and processing status.
// ExtractedContent is non-nil only while Status is StatusCompleted.
type Upload struct {
	ID               string       `json:"id"`
	Filename         string       `json:"filename"`
	ContentType      string       `json:"content_type"`
	Size             int64        `json:"size"`
	Status           UploadStatus `json:"status"`
	StoragePath      string       `json:"storage_path"`
	ExtractedContent *string      `json:"extracted_content,omitempty"`
	Title            string       `json:"title,omitempty"`
	Description      string       `json:"description,omitempty"`
	Subject          string       `json:"subject,omitempty"`
	Grade            string       `json:"grade,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// UploadStatistics is an aggregate view of uploads by status.
// Uploaded+Processing+Completed+Failed always equals Total.
type UploadStatistics struct {
	Total      int `json:"total_uploads"`
	Uploaded   int `json:"uploaded_uploads"`
	Processing int `json:"processing_uploads"`
	Completed  int `json:"completed_uploads"`
	Failed     int `json:"failed_uploads"`
}
