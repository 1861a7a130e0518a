package domain

import (
	"context"
	"time"
)

type Company struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        *string   `json:"image"`
	ImageKey     *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
	Fetch(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id int64) error
}

type RegisterCompanyInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Image    *Upload
}

type UpdateCompanyInput struct {
	Name     string
	Password string
	Image    *Upload
}

type CompanyUsecase interface {
	Register(ctx context.Context, input RegisterCompanyInput) (*Company, string, error)
	Login(ctx context.Context, email, password string) (*Company, string, error)
	Get(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateCompanyInput) (*Company, error)
	// Delete releases the company's attachments, removes all jobs the
	// company owns, applies the configured application cascade policy to
	// applications referencing those jobs, and removes the record.
	Delete(ctx context.Context, id int64) error
}
