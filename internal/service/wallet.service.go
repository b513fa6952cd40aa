package service

import (
	"context"
	"strconv"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/internal/provider/circle"

	"go.uber.org/zap"
)

// WalletStore persists wallet identifiers handed back by Circle.
type WalletStore interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
}

type WalletService struct {
	circle         *circle.Client
	repo           WalletStore
	defaultTokenID string
	logger         *zap.Logger
}

func NewWalletService(circleClient *circle.Client, repo WalletStore, defaultTokenID string, logger *zap.Logger) *WalletService {
	return &WalletService{
		circle:         circleClient,
		repo:           repo,
		defaultTokenID: defaultTokenID,
		logger:         logger,
	}
}

// CreateWallet provisions a wallet set named after the user's email, one
// wallet inside it, and records the identifiers locally.
func (s *WalletService) CreateWallet(ctx context.Context, user *domain.User) (*domain.Wallet, error) {
	walletSetID, err := s.circle.CreateWalletSet(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	refID := strconv.FormatInt(user.ID, 10)
	walletID, address, err := s.circle.CreateWallet(ctx, walletSetID, user.FullName, refID)
	if err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{
		ID:          walletID,
		UserID:      user.ID,
		WalletSetID: walletSetID,
		Address:     address,
		Blockchain:  s.circle.Blockchain,
	}
	if err := s.repo.Create(ctx, wallet); err != nil {
		// the wallet exists at the provider either way, so log loudly
		s.logger.Error("persist wallet failed",
			zap.String("wallet_id", walletID),
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("wallet provisioned",
		zap.String("wallet_id", walletID),
		zap.String("address", address),
		zap.Int64("user_id", user.ID))
	return wallet, nil
}

// Transfer sends tokens out of a custodial wallet. Token and fee level fall
// back to configured defaults when the request leaves them empty.
func (s *WalletService) Transfer(ctx context.Context, walletID, destinationAddress, amount, tokenID, feeLevel string) (string, error) {
	if tokenID == "" {
		tokenID = s.defaultTokenID
	}
	if feeLevel == "" {
		feeLevel = "HIGH"
	}

	txID, err := s.circle.CreateTransfer(ctx, walletID, destinationAddress, amount, tokenID, feeLevel)
	if err != nil {
		return "", err
	}

	s.logger.Info("transfer submitted",
		zap.String("wallet_id", walletID),
		zap.String("tx_id", txID),
		zap.String("amount", amount))
	return txID, nil
}

// Balance is a passthrough to the provider balance endpoint.
func (s *WalletService) Balance(ctx context.Context, walletID string) (string, error) {
	return s.circle.WalletBalance(ctx, walletID)
}

// GetUserWallet returns the user's recorded wallet.
func (s *WalletService) GetUserWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return s.repo.GetByUserID(ctx, userID)
}
