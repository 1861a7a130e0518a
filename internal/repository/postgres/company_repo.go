package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (name, email, password_hash, image, image_key, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		company.Name, company.Email, company.PasswordHash,
		company.Image, company.ImageKey,
		company.CreatedAt, company.UpdatedAt,
	).Scan(&company.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, created_at, updated_at
              FROM companies WHERE id = $1`
	var company domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.Email, &company.PasswordHash,
		&company.Image, &company.ImageKey,
		&company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &company, nil
}

func (r *companyRepo) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, created_at, updated_at
              FROM companies WHERE email = $1`
	var company domain.Company
	err := r.db.QueryRow(ctx, query, email).Scan(
		&company.ID, &company.Name, &company.Email, &company.PasswordHash,
		&company.Image, &company.ImageKey,
		&company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &company, nil
}

func (r *companyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, created_at, updated_at
              FROM companies ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID, &company.Name, &company.Email, &company.PasswordHash,
			&company.Image, &company.ImageKey,
			&company.CreatedAt, &company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	query := `UPDATE companies SET
		name = $2,
		password_hash = $3,
		image = $4,
		image_key = $5,
		updated_at = $6
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.PasswordHash,
		company.Image, company.ImageKey,
		company.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
