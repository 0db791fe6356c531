package model

import "time"

// Attachment is one stored file plus its descriptive metadata, owned by
// exactly one Submission. StoragePath encodes the owning submission id,
// the category, and the original filename, so two submissions can carry
// files with the same name without colliding.
type Attachment struct {
	ID           string `json:"id"`
	SubmissionID string `json:"upload_id"`
	Category     string `json:"doc_type"`
	Title        string `json:"doc_title,omitempty"`
	Label        string `json:"label,omitempty"`
	Filename     string `json:"filename"`
	StoragePath  string `json:"storage_path"`

	Station   string   `json:"station,omitempty"`
	Caption   string   `json:"caption,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
}

// FileReport is the per-file outcome of one batch ingestion.
// SignedURL is nil when URL issuance failed or the file itself failed;
// Error is set only for files whose store or record write failed.
type FileReport struct {
	Filename    string   `json:"filename"`
	StoragePath string   `json:"storage_path,omitempty"`
	SignedURL   *string  `json:"signedUrl"`
	Category    string   `json:"doc_type"`
	Label       string   `json:"label,omitempty"`
	Station     string   `json:"station,omitempty"`
	Caption     string   `json:"caption,omitempty"`
	Latitude    *float64 `json:"lat,omitempty"`
	Longitude   *float64 `json:"lon,omitempty"`
	Error       string   `json:"error,omitempty"`
}
