package repository

import (
	"context"

	"submitapi/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// SubmissionRepository defines data access for submission records using
// SQL queries only. No business logic here — strictly persistence.
type SubmissionRepository interface {
	// Create inserts a new submission row. ID and CreatedAt are assigned
	// by the database; the returned record carries them.
	Create(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// FindByID returns a submission by its ID.
	FindByID(ctx context.Context, id string) (*model.Submission, error)

	// List returns a page of submissions matching the query filters plus
	// the total row count for the same filters.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Submission], error)

	// Delete removes a submission by ID.
	Delete(ctx context.Context, id string) error
}

// ListQuery holds listing filters and limit/offset pagination.
type ListQuery struct {
	// Kind filters by case-insensitive substring of the submission kind.
	Kind string
	// Search is a free-text filter across contractor and project name.
	Search string
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
