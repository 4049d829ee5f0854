package service

import (
	"context"
	"errors"
	"testing"

	"contech_bot/internal/model"
	"contech_bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	jobs        map[int64]model.JobPosting
	nextID      int64
	listFilter  *model.JobStatus
	invalidated int
	err         error
}

func newFakeJobRepo(jobs ...model.JobPosting) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[int64]model.JobPosting{}, nextID: 1}
	for _, j := range jobs {
		j.ID = r.nextID
		r.nextID++
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j *model.JobPosting) error {
	if r.err != nil {
		return r.err
	}
	j.ID = r.nextID
	r.nextID++
	r.jobs[j.ID] = *j
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id int64) (*model.JobPosting, error) {
	if r.err != nil {
		return nil, r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (r *fakeJobRepo) ListOpen(ctx context.Context) ([]model.JobPosting, error) {
	open := model.JobStatusOpen
	return r.List(ctx, &open)
}

func (r *fakeJobRepo) List(_ context.Context, status *model.JobStatus) ([]model.JobPosting, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.listFilter = status
	out := []model.JobPosting{}
	for id := int64(1); id < r.nextID; id++ {
		j, ok := r.jobs[id]
		if ok && (status == nil || j.Status == *status) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, ownerID int) ([]model.JobPosting, error) {
	out := []model.JobPosting{}
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id int64, status model.JobStatus) error {
	if r.err != nil {
		return r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.Status = status
	r.jobs[id] = j
	return nil
}

func (r *fakeJobRepo) InvalidateOpen(context.Context) { r.invalidated++ }

const ownerPhone = "whatsapp:+5511999990000"

func contractor() model.User {
	return model.User{ID: 7, Phone: ownerPhone, Role: model.RoleContractor, DisplayName: "Construtora", Stage: model.StageMainMenu}
}

func validJobRequest() model.CreateJobRequest {
	return model.CreateJobRequest{
		OwnerPhone:   ownerPhone,
		Title:        "Pedreiro para Reboco",
		Description:  "Serviço de reboco em parede interna.",
		PaymentOffer: decimal.RequireFromString("250.456"),
		Latitude:     fptr(sjcLat),
		Longitude:    fptr(sjcLon),
	}
}

func TestCreateJob_Success(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, newFakeUserStore(contractor()))

	job, err := svc.CreateJob(context.Background(), validJobRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, model.JobStatusOpen, job.Status)
	assert.Equal(t, 7, job.OwnerID)
	assert.Equal(t, "250.46", job.PaymentOffer.StringFixed(2))
	assert.True(t, job.PaymentOffer.Equal(decimal.RequireFromString("250.46")))
	assert.Len(t, jobs.jobs, 1)
}

func TestCreateJob_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.CreateJobRequest)
	}{
		{"missing title", func(r *model.CreateJobRequest) { r.Title = "" }},
		{"missing description", func(r *model.CreateJobRequest) { r.Description = "" }},
		{"missing owner", func(r *model.CreateJobRequest) { r.OwnerPhone = "" }},
		{"missing latitude", func(r *model.CreateJobRequest) { r.Latitude = nil }},
		{"latitude out of range", func(r *model.CreateJobRequest) { r.Latitude = fptr(91) }},
		{"longitude out of range", func(r *model.CreateJobRequest) { r.Longitude = fptr(-180.5) }},
		{"negative payment", func(r *model.CreateJobRequest) { r.PaymentOffer = decimal.NewFromInt(-1) }},
		{"payment too large", func(r *model.CreateJobRequest) { r.PaymentOffer = decimal.RequireFromString("10000000000") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jobs := newFakeJobRepo()
			svc := NewJobService(jobs, newFakeUserStore(contractor()))
			req := validJobRequest()
			tc.mutate(&req)

			_, err := svc.CreateJob(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidJob)
			assert.Empty(t, jobs.jobs)
		})
	}
}

func TestCreateJob_OwnerChecks(t *testing.T) {
	worker := contractor()
	worker.Role = model.RoleWorker

	undecided := contractor()
	undecided.Stage = model.StageChoosingType

	tests := []struct {
		name  string
		users *fakeUserStore
		want  error
	}{
		{"unknown owner", newFakeUserStore(), ErrOwnerNotFound},
		{"worker owner", newFakeUserStore(worker), ErrOwnerNotContractor},
		{"role not chosen yet", newFakeUserStore(undecided), ErrOwnerNotContractor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jobs := newFakeJobRepo()
			_, err := NewJobService(jobs, tc.users).CreateJob(context.Background(), validJobRequest())
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, jobs.jobs)
		})
	}
}

func TestCreateJob_RepoError(t *testing.T) {
	jobs := newFakeJobRepo()
	jobs.err = errors.New("insert failed")

	_, err := NewJobService(jobs, newFakeUserStore(contractor())).CreateJob(context.Background(), validJobRequest())

	assert.ErrorIs(t, err, jobs.err)
}

func TestListJobs(t *testing.T) {
	jobs := newFakeJobRepo(
		job("A", 100, sjcLat, sjcLon),
		model.JobPosting{Title: "B", Status: model.JobStatusClosed},
	)
	svc := NewJobService(jobs, newFakeUserStore())

	all, err := svc.ListJobs(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Nil(t, jobs.listFilter)

	closed, err := svc.ListJobs(context.Background(), "CLOSED")
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "B", closed[0].Title)

	_, err = svc.ListJobs(context.Background(), "open")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateJobStatus(t *testing.T) {
	jobs := newFakeJobRepo(job("A", 100, sjcLat, sjcLon))
	svc := NewJobService(jobs, newFakeUserStore())

	updated, err := svc.UpdateJobStatus(context.Background(), 1, model.UpdateJobStatusRequest{Status: model.JobStatusFilled})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFilled, updated.Status)

	_, err = svc.UpdateJobStatus(context.Background(), 99, model.UpdateJobStatusRequest{Status: model.JobStatusClosed})
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = svc.UpdateJobStatus(context.Background(), 1, model.UpdateJobStatusRequest{Status: "PAUSED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
