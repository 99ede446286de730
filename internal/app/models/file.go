package models

import "time"

// ResourceType identifies what an uploaded file is attached to.
type ResourceType string

const (
	ResourceTypeJustification ResourceType = "JUSTIFICATION"
)

// File defines an uploaded document, based on the 'files' table. The only
// upload the service accepts is the justification document a flagged request
// needs before it can pass Research Center review.
type File struct {
	ID           int64        `json:"id" db:"id"`
	FileName     string       `json:"fileName" db:"file_name" example:"justification_memo.pdf"`
	FilePath     string       `json:"-" db:"file_path"`
	FileURL      string       `json:"fileUrl" db:"file_url"`
	FileSize     int64        `json:"fileSize" db:"file_size"`
	FileType     string       `json:"fileType" db:"file_type" example:"application/pdf"`
	ResourceType ResourceType `json:"resourceType" db:"resource_type"`
	ResourceID   int64        `json:"resourceId" db:"resource_id"`
	UploadedByID int64        `json:"uploadedById" db:"uploaded_by_id"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}
