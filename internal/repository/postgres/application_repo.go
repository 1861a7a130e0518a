package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `INSERT INTO job_applications (user_id, job_id, company_id)
              VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, app.UserID, app.JobID, app.CompanyID).
		Scan(&app.ID, &app.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) Exists(ctx context.Context, userID, jobID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE user_id = $1 AND job_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, jobID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *applicationRepo) FetchByUserID(ctx context.Context, userID int64) ([]domain.JobApplication, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.company_id, a.created_at,
			u.name, j.title, j.location, c.name
		FROM job_applications a
		LEFT JOIN users u ON a.user_id = u.id
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN companies c ON a.company_id = c.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`
	return r.fetch(ctx, query, userID)
}

func (r *applicationRepo) FetchByCompanyID(ctx context.Context, companyID int64) ([]domain.JobApplication, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.company_id, a.created_at,
			u.name, j.title, j.location, c.name
		FROM job_applications a
		LEFT JOIN users u ON a.user_id = u.id
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN companies c ON a.company_id = c.id
		WHERE a.company_id = $1
		ORDER BY a.created_at DESC`
	return r.fetch(ctx, query, companyID)
}

func (r *applicationRepo) fetch(ctx context.Context, query string, arg any) ([]domain.JobApplication, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.JobApplication
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.CompanyID, &app.CreatedAt,
			&app.UserName, &app.JobTitle, &app.JobLocation, &app.CompanyName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) DeleteByJobIDs(ctx context.Context, jobIDs []int64) error {
	if len(jobIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM job_applications WHERE job_id = ANY($1)`, pq.Array(jobIDs))
	return err
}

func (r *applicationRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM job_applications WHERE user_id = $1`, userID)
	return err
}

// DetachJobs nulls the job and denormalized company references of
// applications whose job was deleted, keeping the rows as history.
func (r *applicationRepo) DetachJobs(ctx context.Context, jobIDs []int64) error {
	if len(jobIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE job_applications SET job_id = NULL, company_id = NULL WHERE job_id = ANY($1)`,
		pq.Array(jobIDs))
	return err
}

func (r *applicationRepo) DetachUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE job_applications SET user_id = NULL WHERE user_id = $1`, userID)
	return err
}
