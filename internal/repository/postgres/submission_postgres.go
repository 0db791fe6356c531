package postgres

import (
	"context"
	"database/sql"

	"submitapi/internal/model"
	"submitapi/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of
// repository.SubmissionRepository. It uses database/sql with
// parameterized queries and contains no business logic.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

const submissionColumns = `id, upload_type, contractor_name, project_name, notes,
		certifier_name, certifier_designation, certifier_date, created_at`

func scanSubmission(row interface{ Scan(...any) error }) (*model.Submission, error) {
	var s model.Submission
	if err := row.Scan(
		&s.ID,
		&s.Kind,
		&s.ContractorName,
		&s.ProjectName,
		&s.Notes,
		&s.CertifierName,
		&s.CertifierDesignation,
		&s.CertifierDate,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new submission row. The database assigns the ID and
// creation timestamp.
func (r *SubmissionPostgres) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	const q = `
		INSERT INTO submissions (upload_type, contractor_name, project_name, notes,
			certifier_name, certifier_designation, certifier_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + submissionColumns
	row := r.db.QueryRowContext(ctx, q,
		sub.Kind,
		sub.ContractorName,
		sub.ProjectName,
		sub.Notes,
		sub.CertifierName,
		sub.CertifierDesignation,
		sub.CertifierDate,
	)
	return scanSubmission(row)
}

// FindByID fetches a single submission by its ID.
func (r *SubmissionPostgres) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	const q = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE id = $1
	`
	return scanSubmission(r.db.QueryRowContext(ctx, q, id))
}

// List returns submissions using LIMIT/OFFSET pagination and a total
// count over the same filters. The total is independent of the page.
func (r *SubmissionPostgres) List(ctx context.Context, q repository.ListQuery) (*repository.PageResult[model.Submission], error) {
	const where = `
		WHERE ($1 = '' OR upload_type ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR contractor_name ILIKE '%' || $2 || '%' OR project_name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`+where, q.Kind, q.Search).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + submissionColumns + `
		FROM submissions` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, q.Kind, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Submission]{Items: items, Total: total}, nil
}

// Delete removes a submission by ID. Missing rows are not an error.
func (r *SubmissionPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM submissions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
