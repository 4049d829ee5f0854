package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus is the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusFilled JobStatus = "FILLED"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusFilled:
		return true
	}
	return false
}

// JobPosting is a job opportunity published by a contractor
type JobPosting struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PaymentOffer decimal.Decimal `json:"payment_offer"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Status       JobStatus       `json:"status"`
	OwnerID      int             `json:"contractor_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Coordinates returns the posting position; either value may be nil.
func (j JobPosting) Coordinates() (*float64, *float64) {
	return j.Latitude, j.Longitude
}

// CreateJobRequest is used for publishing a new job posting
type CreateJobRequest struct {
	OwnerPhone   string          `json:"owner_phone" validate:"required"`
	Title        string          `json:"title" validate:"required,max=255"`
	Description  string          `json:"description" validate:"required,max=2000"`
	PaymentOffer decimal.Decimal `json:"payment_offer"`
	Latitude     *float64        `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64        `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// UpdateJobStatusRequest changes the status of an existing posting
type UpdateJobStatusRequest struct {
	Status JobStatus `json:"status" validate:"required,oneof=OPEN CLOSED FILLED"`
}
