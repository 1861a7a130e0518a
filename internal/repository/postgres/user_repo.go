package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// isUniqueViolation reports a Postgres unique constraint failure (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, image, image_key, resume, resume_key, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Image, user.ImageKey, user.Resume, user.ResumeKey,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, resume, resume_key, created_at, updated_at
              FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Image, &user.ImageKey, &user.Resume, &user.ResumeKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, resume, resume_key, created_at, updated_at
              FROM users WHERE email = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Image, &user.ImageKey, &user.Resume, &user.ResumeKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) Fetch(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, email, password_hash, image, image_key, resume, resume_key, created_at, updated_at
              FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Image, &user.ImageKey, &user.Resume, &user.ResumeKey,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
		name = $2,
		password_hash = $3,
		image = $4,
		image_key = $5,
		resume = $6,
		resume_key = $7,
		updated_at = $8
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.PasswordHash,
		user.Image, user.ImageKey, user.Resume, user.ResumeKey,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
