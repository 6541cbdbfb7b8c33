package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobKind string

const (
	JobVerifyPayment JobKind = "verify_payment"
	JobFulfillOrder  JobKind = "fulfill_order"
)

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

type Job struct {
	ID          uuid.UUID
	Kind        JobKind
	OrderNumber OrderNumber
	Status      JobStatus
	Attempts    int
	MaxAttempts int
	RunAt       time.Time
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FinalAttempt reports whether the current run is the last one allowed.
func (j *Job) FinalAttempt() bool {
	return j.MaxAttempts > 0 && j.Attempts >= j.MaxAttempts
}
