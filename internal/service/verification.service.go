package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/internal/provider/worldid"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"go.uber.org/zap"
)

// HashEmail hashes an email with SHA-256 so verification state is never
// stored against the raw address.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(email))))
	return hex.EncodeToString(sum[:])
}

type VerificationService struct {
	repo    VerificationStore
	worldID *worldid.Client
	logger  *zap.Logger
}

func NewVerificationService(repo VerificationStore, worldID *worldid.Client, logger *zap.Logger) *VerificationService {
	return &VerificationService{repo: repo, worldID: worldID, logger: logger}
}

// VerifyProof relays the zero-knowledge proof to World ID. Provider
// rejections surface as *worldid.APIError with the provider's status.
func (s *VerificationService) VerifyProof(ctx context.Context, req *worldid.VerifyRequest) (*worldid.VerifyResult, error) {
	res, err := s.worldID.Verify(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("credential verified",
		zap.String("nullifier_hash", res.NullifierHash),
		zap.String("level", req.VerificationLevel))
	return res, nil
}

// SetStatus records the verification level for an email.
func (s *VerificationService) SetStatus(ctx context.Context, email string, status domain.VerificationStatus) error {
	if !domain.ValidVerificationStatus(status) {
		return xerrors.ErrInvalidVerification
	}
	return s.repo.Upsert(ctx, HashEmail(email), status)
}

// GetStatus returns the verification level for an email.
func (s *VerificationService) GetStatus(ctx context.Context, email string) (domain.VerificationStatus, error) {
	v, err := s.repo.GetByEmailHash(ctx, HashEmail(email))
	if err != nil {
		return "", err
	}
	return v.Status, nil
}
