package repository

import (
	"context"

	"submitapi/internal/model"
)

// AttachmentRepository defines data access for attachment records.
type AttachmentRepository interface {
	// Create inserts a new attachment row referencing an existing
	// submission. ID and CreatedAt are assigned by the database.
	Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error)

	// ListBySubmission returns all attachments of one submission in
	// insertion order.
	ListBySubmission(ctx context.Context, submissionID string) ([]model.Attachment, error)

	// CountBySubmission returns the number of attachments owned by one
	// submission.
	CountBySubmission(ctx context.Context, submissionID string) (int, error)

	// DeleteBySubmission removes all attachments of one submission.
	DeleteBySubmission(ctx context.Context, submissionID string) error
}
