package usecase

import (
	"context"
	"errors"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
)

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply records a job application. At most one application can exist per
// (user, job) pair; the owning company is denormalized from the job at
// creation time and never refreshed, which is safe because job ownership
// is immutable.
func (u *applicationUsecase) Apply(ctx context.Context, userID, jobID int64) (*domain.JobApplication, error) {
	exists, err := u.appRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Already applied for this job")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}

	app := &domain.JobApplication{
		UserID:    &userID,
		JobID:     &jobID,
		CompanyID: &job.CompanyID,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		// A concurrent apply can slip past the pre-check; the unique
		// index still holds the invariant.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Already applied for this job")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) ListByUser(ctx context.Context, userID int64) ([]domain.JobApplication, error) {
	return u.appRepo.FetchByUserID(ctx, userID)
}

func (u *applicationUsecase) ListByCompany(ctx context.Context, companyID int64) ([]domain.JobApplication, error) {
	return u.appRepo.FetchByCompanyID(ctx, companyID)
}
