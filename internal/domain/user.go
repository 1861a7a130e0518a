package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        *string   `json:"image"`
	ImageKey     *string   `json:"-"`
	Resume       *string   `json:"resume"`
	ResumeKey    *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Fetch(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

type RegisterUserInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Image    *Upload
	Resume   *Upload
}

type UpdateUserInput struct {
	Name     string
	Password string
	Image    *Upload
	Resume   *Upload
}

type UserUsecase interface {
	Register(ctx context.Context, input RegisterUserInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	Get(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateUserInput) (*User, error)
	// Delete releases the user's attachments, applies the configured
	// application cascade policy, and removes the record.
	Delete(ctx context.Context, id int64) error
}
