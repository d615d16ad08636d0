package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"

	"siteapi/internal/model"
)

// SubmissionRepository defines data access for the contact submission
// archive using SQL queries only. No business logic here, strictly
// persistence operations.
type SubmissionRepository interface {
	// Create inserts a new submission row. The caller provides ID and
	// SubmittedAt. Returns the stored record.
	Create(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error)

	// List returns a paginated list of submissions, newest first, and the
	// total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ContactSubmission], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
