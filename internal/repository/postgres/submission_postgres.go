package postgres

import (
	"context"
	"database/sql"

	"siteapi/internal/model"
	"siteapi/internal/repository"
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

// Create inserts a new submission row and returns the stored record.
func (r *SubmissionPostgres) Create(ctx context.Context, sub *model.ContactSubmission) (*model.ContactSubmission, error) {
	const q = `
		INSERT INTO contact_submissions (id, name, email, company, message, utm_source, utm_medium, utm_campaign, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, email, company, message, utm_source, utm_medium, utm_campaign, submitted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		sub.Name,
		sub.Email,
		sub.Company,
		sub.Message,
		sub.UTM.Source,
		sub.UTM.Medium,
		sub.UTM.Campaign,
		sub.SubmittedAt,
	)
	var out model.ContactSubmission
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.Company,
		&out.Message,
		&out.UTM.Source,
		&out.UTM.Medium,
		&out.UTM.Campaign,
		&out.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns submissions newest first using LIMIT/OFFSET pagination and
// a total count.
func (r *SubmissionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ContactSubmission], error) {
	const countQ = `SELECT COUNT(*) FROM contact_submissions`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, name, email, company, message, utm_source, utm_medium, utm_campaign, submitted_at
		FROM contact_submissions
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactSubmission, 0, pq.Limit)
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Company,
			&s.Message,
			&s.UTM.Source,
			&s.UTM.Medium,
			&s.UTM.Campaign,
			&s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ContactSubmission]{Items: items, Total: total}, nil
}
