package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (company_id, title, description, location, category, level, salary, date, visible, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Description, job.Location, job.Category, job.Level,
		job.Salary, job.Date, job.Visible,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, company_id, title, description, location, category, level, salary, date, visible, created_at, updated_at
              FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location, &job.Category, &job.Level,
		&job.Salary, &job.Date, &job.Visible,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

// GetByIDWithCompany retrieves a job with the owning company's public fields
func (r *jobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.location, j.category, j.level,
			j.salary, j.date, j.visible, j.created_at, j.updated_at,
			COALESCE(c.name, 'Unknown Company') as company_name,
			c.image
		FROM jobs j
		LEFT JOIN companies c ON j.company_id = c.id
		WHERE j.id = $1`

	var job domain.JobWithCompany
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location, &job.Category, &job.Level,
		&job.Salary, &job.Date, &job.Visible, &job.CreatedAt, &job.UpdatedAt,
		&job.CompanyName, &job.CompanyImage,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

// FetchVisible retrieves only visible jobs, newest first. The filter is
// part of the query so no client input can widen it.
func (r *jobRepo) FetchVisible(ctx context.Context) ([]domain.JobWithCompany, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.location, j.category, j.level,
			j.salary, j.date, j.visible, j.created_at, j.updated_at,
			COALESCE(c.name, 'Unknown Company') as company_name,
			c.image
		FROM jobs j
		LEFT JOIN companies c ON j.company_id = c.id
		WHERE j.visible = TRUE
		ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.JobWithCompany
	for rows.Next() {
		var job domain.JobWithCompany
		if err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location, &job.Category, &job.Level,
			&job.Salary, &job.Date, &job.Visible, &job.CreatedAt, &job.UpdatedAt,
			&job.CompanyName, &job.CompanyImage,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID int64) ([]domain.Job, error) {
	query := `SELECT id, company_id, title, description, location, category, level, salary, date, visible, created_at, updated_at
              FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location, &job.Category, &job.Level,
			&job.Salary, &job.Date, &job.Visible,
			&job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		location = $4,
		category = $5,
		level = $6,
		salary = $7,
		date = $8,
		visible = $9,
		updated_at = $10
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.Category, job.Level,
		job.Salary, job.Date, job.Visible,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByCompanyID removes every job the company owns, returning the ids
// of the deleted rows so the caller can apply the application cascade
// policy to them.
func (r *jobRepo) DeleteByCompanyID(ctx context.Context, companyID int64) ([]int64, error) {
	query := `DELETE FROM jobs WHERE company_id = $1 RETURNING id`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
