package service

import (
	"context"
	"errors"
	"fmt"

	"contech_bot/internal/model"
	"contech_bot/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidJob         = errors.New("invalid job posting")
	ErrInvalidStatus      = errors.New("invalid job status")
	ErrJobNotFound        = errors.New("job posting not found")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrOwnerNotContractor = errors.New("only contractors can publish job postings")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// largest value a NUMERIC(12,2) column holds
var maxPaymentOffer = decimal.RequireFromString("9999999999.99")

// OwnerLookup finds the user publishing a posting
type OwnerLookup interface {
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
}

// JobService defines operations for job postings
type JobService interface {
	CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.JobPosting, error)
	ListJobs(ctx context.Context, status string) ([]model.JobPosting, error)
	UpdateJobStatus(ctx context.Context, id int64, req model.UpdateJobStatusRequest) (*model.JobPosting, error)
}

type jobService struct {
	jobs   repository.JobRepository
	owners OwnerLookup
}

// NewJobService creates a new JobService
func NewJobService(jobs repository.JobRepository, owners OwnerLookup) JobService {
	return &jobService{jobs: jobs, owners: owners}
}

func (s *jobService) CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.JobPosting, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if req.PaymentOffer.IsNegative() || req.PaymentOffer.GreaterThan(maxPaymentOffer) {
		return nil, fmt.Errorf("%w: payment_offer must be between 0 and %s", ErrInvalidJob, maxPaymentOffer)
	}

	owner, err := s.owners.FindByPhone(ctx, req.OwnerPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to find job owner: %w", err)
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}
	if !owner.Stage.RoleAssigned() || owner.Role != model.RoleContractor {
		return nil, ErrOwnerNotContractor
	}

	job := &model.JobPosting{
		Title:        req.Title,
		Description:  req.Description,
		PaymentOffer: req.PaymentOffer.Round(2),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Status:       model.JobStatusOpen,
		OwnerID:      owner.ID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job posting in repo: %w", err)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, status string) ([]model.JobPosting, error) {
	var filter *model.JobStatus
	if status != "" {
		st := model.JobStatus(status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		filter = &st
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	return jobs, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, id int64, req model.UpdateJobStatusRequest) (*model.JobPosting, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if err := s.jobs.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to update job posting status: %w", err)
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload job posting: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}
