package repository

import (
	"context"
	"errors"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepo struct {
	db *pgxpool.Pool
}

func NewWalletRepo(db *pgxpool.Pool) *WalletRepo {
	return &WalletRepo{db: db}
}

// Create records a provisioned Circle wallet for a user.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO wallets (id, user_id, wallet_set_id, address, blockchain, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING created_at
	`, w.ID, w.UserID, w.WalletSetID, w.Address, w.Blockchain).Scan(&w.CreatedAt)
}

// GetByUserID fetches the most recently provisioned wallet for a user.
func (r *WalletRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, wallet_set_id, address, blockchain, created_at
		FROM wallets
		WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&w.ID, &w.UserID, &w.WalletSetID, &w.Address, &w.Blockchain, &w.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

// GetByID fetches a wallet record by its Circle wallet ID.
func (r *WalletRepo) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, wallet_set_id, address, blockchain, created_at
		FROM wallets
		WHERE id=$1
	`, id).Scan(&w.ID, &w.UserID, &w.WalletSetID, &w.Address, &w.Blockchain, &w.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}
