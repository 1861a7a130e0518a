package usecase

import (
	"context"
	"time"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) Create(ctx context.Context, companyID int64, job *domain.Job) error {
	if job.Title == "" || job.Description == "" || job.Location == "" || job.Category == "" || job.Level == "" {
		return apperror.BadRequest("All fields are required")
	}
	if job.Salary < 0 {
		return apperror.BadRequest("Salary cannot be negative")
	}
	if job.Date.IsZero() {
		job.Date = time.Now()
	}

	job.CompanyID = companyID
	job.Visible = true
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	return u.jobRepo.Create(ctx, job)
}

func (u *jobUsecase) ListByCompany(ctx context.Context, companyID int64) ([]domain.Job, error) {
	return u.jobRepo.FetchByCompanyID(ctx, companyID)
}

func (u *jobUsecase) Update(ctx context.Context, companyID, jobID int64, input domain.UpdateJobInput) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, companyID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		job.Title = input.Title
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	if input.Category != "" {
		job.Category = input.Category
	}
	if input.Level != "" {
		job.Level = input.Level
	}
	if input.Salary != nil {
		if *input.Salary < 0 {
			return nil, apperror.BadRequest("Salary cannot be negative")
		}
		job.Salary = *input.Salary
	}
	if input.Date != nil {
		job.Date = *input.Date
	}

	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) Delete(ctx context.Context, companyID, jobID int64) error {
	if _, err := u.ownedJob(ctx, companyID, jobID); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ToggleVisibility(ctx context.Context, companyID, jobID int64) (bool, error) {
	job, err := u.ownedJob(ctx, companyID, jobID)
	if err != nil {
		return false, err
	}

	job.Visible = !job.Visible
	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return false, apperror.Internal(err)
	}
	return job.Visible, nil
}

// ListVisible returns only publicly visible jobs, newest first. The filter
// is enforced server-side so a client cannot bypass it.
func (u *jobUsecase) ListVisible(ctx context.Context) ([]domain.JobWithCompany, error) {
	return u.jobRepo.FetchVisible(ctx)
}

func (u *jobUsecase) GetWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	job, err := u.jobRepo.GetByIDWithCompany(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// ownedJob loads a job and enforces that the requesting company owns it.
func (u *jobUsecase) ownedJob(ctx context.Context, companyID, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.CompanyID != companyID {
		return nil, apperror.Forbidden("Unauthorized access")
	}
	return job, nil
}
