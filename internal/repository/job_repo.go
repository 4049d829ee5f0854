package repository

import (
	"context"
	"errors"
	"fmt"

	"contech_bot/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JobRepository defines operations for job posting data
type JobRepository interface {
	Create(ctx context.Context, job *model.JobPosting) error
	FindByID(ctx context.Context, id int64) (*model.JobPosting, error)
	ListOpen(ctx context.Context) ([]model.JobPosting, error)
	List(ctx context.Context, status *model.JobStatus) ([]model.JobPosting, error)
	ListByOwner(ctx context.Context, ownerID int) ([]model.JobPosting, error)
	UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error
	// InvalidateOpen drops any cached view of open postings. Callers use it
	// after changing postings through another path (e.g. cascade deletes).
	InvalidateOpen(ctx context.Context)
}

const jobColumns = `id, title, description, payment_offer::text, latitude, longitude, status, contractor_id, created_at`

type jobRepository struct {
	db DBTX
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

// Create inserts a new job posting into the database
func (r *jobRepository) Create(ctx context.Context, j *model.JobPosting) error {
	if j.Status == "" {
		j.Status = model.JobStatusOpen
	}
	sql := `INSERT INTO job_opportunities (title, description, payment_offer, latitude, longitude, contractor_id, status)
            VALUES ($1, $2, $3::numeric, $4, $5, $6, $7) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, j.Title, j.Description, j.PaymentOffer.String(), j.Latitude, j.Longitude, j.OwnerID, string(j.Status)).
		Scan(&j.ID, &j.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}
	return nil
}

// FindByID retrieves a job posting by its ID
func (r *jobRepository) FindByID(ctx context.Context, id int64) (*model.JobPosting, error) {
	sql := `SELECT ` + jobColumns + ` FROM job_opportunities WHERE id = $1`
	j, err := scanJob(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find job posting by ID: %w", err)
	}
	return j, nil
}

// ListOpen retrieves every posting eligible for matching, oldest first
func (r *jobRepository) ListOpen(ctx context.Context) ([]model.JobPosting, error) {
	status := model.JobStatusOpen
	return r.List(ctx, &status)
}

// List retrieves postings, optionally filtered by status
func (r *jobRepository) List(ctx context.Context, status *model.JobStatus) ([]model.JobPosting, error) {
	sql := `SELECT ` + jobColumns + ` FROM job_opportunities`
	var args []any
	if status != nil {
		sql += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	sql += ` ORDER BY id`
	return r.query(ctx, sql, args...)
}

// ListByOwner retrieves the postings published by a contractor
func (r *jobRepository) ListByOwner(ctx context.Context, ownerID int) ([]model.JobPosting, error) {
	sql := `SELECT ` + jobColumns + ` FROM job_opportunities WHERE contractor_id = $1 ORDER BY id`
	return r.query(ctx, sql, ownerID)
}

// UpdateStatus changes the status of a posting
func (r *jobRepository) UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE job_opportunities SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update job posting status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update job posting %d: %w", id, ErrNotFound)
	}
	return nil
}

// InvalidateOpen is a no-op: the database is always current.
func (r *jobRepository) InvalidateOpen(context.Context) {}

func (r *jobRepository) query(ctx context.Context, sql string, args ...any) ([]model.JobPosting, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job postings: %w", err)
	}
	defer rows.Close()

	jobs := []model.JobPosting{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job posting rows: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*model.JobPosting, error) {
	var (
		j       model.JobPosting
		payment string
		status  string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &payment, &j.Latitude, &j.Longitude, &status, &j.OwnerID, &j.CreatedAt); err != nil {
		return nil, err
	}
	offer, err := decimal.NewFromString(payment)
	if err != nil {
		return nil, fmt.Errorf("invalid payment offer %q: %w", payment, err)
	}
	j.PaymentOffer = offer
	j.Status = model.JobStatus(status)
	return &j, nil
}
