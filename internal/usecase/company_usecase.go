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

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	jobRepo     domain.JobRepository
	appRepo     domain.ApplicationRepository
	lifecycle   domain.AttachmentLifecycle
	tokens      *token.Issuer
	validate    *validator.Validate
	policy      config.CascadePolicy
}

func NewCompanyUsecase(
	companyRepo domain.CompanyRepository,
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	lifecycle domain.AttachmentLifecycle,
	tokens *token.Issuer,
	validate *validator.Validate,
	policy config.CascadePolicy,
) domain.CompanyUsecase {
	return &companyUsecase{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		appRepo:     appRepo,
		lifecycle:   lifecycle,
		tokens:      tokens,
		validate:    validate,
		policy:      policy,
	}
}

func (u *companyUsecase) Register(ctx context.Context, input domain.RegisterCompanyInput) (*domain.Company, string, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, "", apperror.BadRequest("Name, email, and password (min 8 characters) are required")
	}

	if existing, _ := u.companyRepo.GetByEmail(ctx, input.Email); existing != nil {
		return nil, "", apperror.Conflict("Company already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	company := &domain.Company{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if input.Image != nil {
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindCompany, domain.FieldImage, input.Image)
		if err != nil {
			return nil, "", err
		}
		company.Image, company.ImageKey = &ref.URL, &ref.Key
	}

	if err := u.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", apperror.Conflict("Company already exists")
		}
		return nil, "", apperror.Internal(err)
	}

	tok, err := u.tokens.Issue(company.ID, token.KindCompany)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return company, tok, nil
}

func (u *companyUsecase) Login(ctx context.Context, email, password string) (*domain.Company, string, error) {
	if email == "" || password == "" {
		return nil, "", apperror.BadRequest("Email and password required")
	}

	company, err := u.companyRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	tok, err := u.tokens.Issue(company.ID, token.KindCompany)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return company, tok, nil
}

func (u *companyUsecase) Get(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}
	return company, nil
}

func (u *companyUsecase) List(ctx context.Context) ([]domain.Company, error) {
	return u.companyRepo.Fetch(ctx)
}

func (u *companyUsecase) UpdateProfile(ctx context.Context, id int64, input domain.UpdateCompanyInput) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, apperror.BadRequest("Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		company.PasswordHash = string(hash)
	}

	if input.Image != nil {
		// New upload is staged before the old object is touched.
		ref, err := u.lifecycle.Stage(ctx, domain.AccountKindCompany, domain.FieldImage, input.Image)
		if err != nil {
			return nil, err
		}
		if company.Image != nil {
			u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *company.Image, Key: deref(company.ImageKey)})
		}
		company.Image, company.ImageKey = &ref.URL, &ref.Key
	}

	company.UpdatedAt = time.Now()
	if err := u.companyRepo.Update(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}

// Delete cascades: the company's attachments are released, every job it
// owns is removed, the configured policy is applied to applications that
// referenced those jobs, and finally the record itself is deleted.
func (u *companyUsecase) Delete(ctx context.Context, id int64) error {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Company not found")
	}

	if company.Image != nil {
		u.lifecycle.Release(ctx, domain.AttachmentRef{URL: *company.Image, Key: deref(company.ImageKey)})
	}

	jobIDs, err := u.jobRepo.DeleteByCompanyID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}

	if len(jobIDs) > 0 {
		switch u.policy {
		case config.CascadeDelete:
			if err := u.appRepo.DeleteByJobIDs(ctx, jobIDs); err != nil {
				return apperror.Internal(err)
			}
		case config.CascadeAnonymize:
			if err := u.appRepo.DetachJobs(ctx, jobIDs); err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if err := u.companyRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
