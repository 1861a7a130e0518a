package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/CodeWithNorayr/job-portal-platform-backend/config"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/token"
)

type userUsecase struct {
	userRepo  domain.UserRepository
	appRepo   domain.ApplicationRepository
	lifecycle domain.AttachmentLifecycle
	tokens    *token.Issuer
	validate  *validator.Validate
	policy    config.CascadePolicy
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	appRepo domain.ApplicationRepository,
	lifecycle domain.AttachmentLifecycle,
	tokens *token.Issuer,
	validate *validator.Validate,
	policy config.CascadePolicy,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:  userRepo,
		appRepo:   appRepo,
		lifecycle: lifecycle,
		tokens:    tokens,
		validate:  validate,
		policy:    policy,
	}
}

func (u *userUsecase) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, string, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, "", apperror.BadRequest("Name, email, and password (min 8 characters) are required")
	}

	if existing, _ := u.userRepo.GetByEmail(ctx, input.Email); existing != nil {
		return nil, "", apperror.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if input.Image != nil {
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindUser, domain.FieldImage, input.Image)
		if err != nil {
			return nil, "", err
		}
		user.Image, user.ImageKey = &ref.URL, &ref.Key
	}
	if input.Resume != nil {
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindUser, domain.FieldResume, input.Resume)
		if err != nil {
			return nil, "", err
		}
		user.Resume, user.ResumeKey = &ref.URL, &ref.Key
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", apperror.Conflict("User already exists")
		}
		return nil, "", apperror.Internal(err)
	}

	tok, err := u.tokens.Issue(user.ID, token.KindUser)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, tok, nil
}

func (u *userUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperror.BadRequest("Email and password required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	tok, err := u.tokens.Issue(user.ID, token.KindUser)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, tok, nil
}

func (u *userUsecase) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *userUsecase) List(ctx context.Context) ([]domain.User, error) {
	return u.userRepo.Fetch(ctx)
}

// UpdateProfile stages any replacement attachment before touching the old
// one, so a failed upload never loses data. Delete-old and record-update
// stay separate operations: a crash in between leaves the old object
// orphaned in storage, which is tolerated.
func (u *userUsecase) UpdateProfile(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, apperror.BadRequest("Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = string(hash)
	}

	if input.Image != nil {
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindUser, domain.FieldImage, input.Image)
		if err != nil {
			return nil, err
		}
		if user.Image != nil {
			u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *user.Image, Key: deref(user.ImageKey)})
		}
		user.Image, user.ImageKey = &ref.URL, &ref.Key
	}

	if input.Resume != nil {
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindUser, domain.FieldResume, input.Resume)
		if err != nil {
			return nil, err
		}
		if user.Resume != nil {
			u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *user.Resume, Key: deref(user.ResumeKey)})
		}
		user.Resume, user.ResumeKey = &ref.URL, &ref.Key
	}

	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Delete releases every attachment the user owns, applies the configured
// application cascade policy, and removes the record. Attachment cleanup is
// best-effort and never blocks the deletion.
func (u *userUsecase) Delete(ctx context.Context, id int64) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("User not found")
	}

	if user.Image != nil {
		u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *user.Image, Key: deref(user.ImageKey)})
	}
	if user.Resume != nil {
		u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *user.Resume, Key: deref(user.ResumeKey)})
	}

	switch u.policy {
	case config.CascadeDelete:
		if err := u.appRepo.DeleteByUserID(ctx, id); err != nil {
			return apperror.Internal(err)
		}
	case config.CascadeAnonymize:
		if err := u.appRepo.DetachUser(ctx, id); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
