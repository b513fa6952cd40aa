package repository

import (
	"context"
	"errors"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. A duplicate email maps to ErrEmailAlreadyInUse.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users
			(email, password_hash, full_name, occupation, company, skills, country, city, linkedin_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		RETURNING id, created_at
	`, u.Email, u.PasswordHash, u.FullName, u.Occupation, u.Company, u.Skills, u.Country, u.City, u.LinkedinURL,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return xerrors.ErrEmailAlreadyInUse
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, occupation, company, skills, country, city, linkedin_url, created_at
		FROM users
		WHERE email=$1
	`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Occupation, &u.Company,
		&u.Skills, &u.Country, &u.City, &u.LinkedinURL, &u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by its ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, occupation, company, skills, country, city, linkedin_url, created_at
		FROM users
		WHERE id=$1
	`, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Occupation, &u.Company,
		&u.Skills, &u.Country, &u.City, &u.LinkedinURL, &u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
