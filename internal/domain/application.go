package domain

import (
	"context"
	"time"
)

// JobApplication links a user, a job, and the job's owning company. The
// company reference is denormalized from the job at creation time and never
// refreshed; job ownership is immutable so it cannot go stale. The three
// references are nullable so the anonymize cascade policy can detach them.
type JobApplication struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id"`
	JobID     *int64    `json:"job_id"`
	CompanyID *int64    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`

	// Joined data for list responses
	UserName    *string `json:"user_name,omitempty"`
	JobTitle    *string `json:"job_title,omitempty"`
	JobLocation *string `json:"job_location,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *JobApplication) error
	Exists(ctx context.Context, userID, jobID int64) (bool, error)
	FetchByUserID(ctx context.Context, userID int64) ([]JobApplication, error)
	FetchByCompanyID(ctx context.Context, companyID int64) ([]JobApplication, error)
	// Cascade policy support
	DeleteByJobIDs(ctx context.Context, jobIDs []int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DetachJobs(ctx context.Context, jobIDs []int64) error
	DetachUser(ctx context.Context, userID int64) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID int64) (*JobApplication, error)
	ListByUser(ctx context.Context, userID int64) ([]JobApplication, error)
	ListByCompany(ctx context.Context, companyID int64) ([]JobApplication, error)
}
