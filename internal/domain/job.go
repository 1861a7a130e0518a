package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Job struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Salary      float64   `json:"salary"`
	Date        time.Time `json:"date"`
	Visible     bool      `json:"visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobWithCompany extends Job with the owning company's public fields
type JobWithCompany struct {
	Job
	CompanyName  string  `json:"company_name"`
	CompanyImage *string `json:"company_image"`
}

type UpdateJobInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      *float64
	Date        *time.Time
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithCompany(ctx context.Context, id int64) (*JobWithCompany, error)
	FetchVisible(ctx context.Context) ([]JobWithCompany, error)
	FetchByCompanyID(ctx context.Context, companyID int64) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
	// DeleteByCompanyID removes every job the company owns and returns
	// the ids of the deleted rows.
	DeleteByCompanyID(ctx context.Context, companyID int64) ([]int64, error)
}

type JobUsecase interface {
	Create(ctx context.Context, companyID int64, job *Job) error
	ListByCompany(ctx context.Context, companyID int64) ([]Job, error)
	Update(ctx context.Context, companyID, jobID int64, input UpdateJobInput) (*Job, error)
	Delete(ctx context.Context, companyID, jobID int64) error
	ToggleVisibility(ctx context.Context, companyID, jobID int64) (bool, error)
	ListVisible(ctx context.Context) ([]JobWithCompany, error)
	GetWithCompany(ctx context.Context, id int64) (*JobWithCompany, error)
}
