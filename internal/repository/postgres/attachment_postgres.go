package postgres

import (
	"context"
	"database/sql"

	"submitapi/internal/model"
	"submitapi/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of
// repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `id, upload_id, doc_type, doc_title, label, filename, storage_path,
		station, caption, latitude, longitude, created_at`

func scanAttachment(row interface{ Scan(...any) error }) (*model.Attachment, error) {
	var a model.Attachment
	if err := row.Scan(
		&a.ID,
		&a.SubmissionID,
		&a.Category,
		&a.Title,
		&a.Label,
		&a.Filename,
		&a.StoragePath,
		&a.Station,
		&a.Caption,
		&a.Latitude,
		&a.Longitude,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new attachment row referencing an existing submission.
func (r *AttachmentPostgres) Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (upload_id, doc_type, doc_title, label, filename, storage_path,
			station, caption, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + attachmentColumns
	row := r.db.QueryRowContext(ctx, q,
		att.SubmissionID,
		att.Category,
		att.Title,
		att.Label,
		att.Filename,
		att.StoragePath,
		att.Station,
		att.Caption,
		att.Latitude,
		att.Longitude,
	)
	return scanAttachment(row)
}

// ListBySubmission returns all attachments of one submission in insertion order.
func (r *AttachmentPostgres) ListBySubmission(ctx context.Context, submissionID string) ([]model.Attachment, error) {
	const q = `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE upload_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountBySubmission returns the number of attachments owned by one submission.
func (r *AttachmentPostgres) CountBySubmission(ctx context.Context, submissionID string) (int, error) {
	const q = `SELECT COUNT(*) FROM attachments WHERE upload_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, submissionID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteBySubmission removes all attachments of one submission.
func (r *AttachmentPostgres) DeleteBySubmission(ctx context.Context, submissionID string) error {
	const q = `DELETE FROM attachments WHERE upload_id = $1`
	res, err := r.db.ExecContext(ctx, q, submissionID)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
