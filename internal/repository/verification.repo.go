package repository

import (
	"context"
	"errors"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationRepo struct {
	db *pgxpool.Pool
}

func NewVerificationRepo(db *pgxpool.Pool) *VerificationRepo {
	return &VerificationRepo{db: db}
}

// Upsert sets the verification status for a hashed email,
// creating the row when the email has never been seen.
func (r *VerificationRepo) Upsert(ctx context.Context, emailHash string, status domain.VerificationStatus) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verifications (email_hash, status, updated_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (email_hash)
		DO UPDATE SET status=EXCLUDED.status, updated_at=NOW()
	`, emailHash, status)
	return err
}

// GetByEmailHash fetches the verification record for a hashed email.
func (r *VerificationRepo) GetByEmailHash(ctx context.Context, emailHash string) (*domain.Verification, error) {
	var v domain.Verification
	err := r.db.QueryRow(ctx, `
		SELECT id, email_hash, status, updated_at
		FROM verifications
		WHERE email_hash=$1
	`, emailHash).Scan(&v.ID, &v.EmailHash, &v.Status, &v.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}
