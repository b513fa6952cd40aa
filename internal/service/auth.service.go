package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the subset of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// VerificationStore seeds and reads per-email verification state.
type VerificationStore interface {
	Upsert(ctx context.Context, emailHash string, status domain.VerificationStatus) error
	GetByEmailHash(ctx context.Context, emailHash string) (*domain.Verification, error)
}

type AuthService struct {
	users         UserStore
	verifications VerificationStore
	jwtSecret     []byte
	logger        *zap.Logger
}

func NewAuthService(users UserStore, verifications VerificationStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		jwtSecret:     []byte(jwtSecret),
		logger:        logger,
	}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Occupation  string `json:"occupation"`
	Company     string `json:"company"`
	Skills      string `json:"skills"`
	Country     string `json:"country"`
	City        string `json:"city"`
	LinkedinURL string `json:"linkedin_url"`
}

// Register creates the user with a bcrypt password hash and seeds the
// verification table with status "not" for the hashed email.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, xerrors.ErrInvalidEmailFormat
	}
	if req.Password == "" {
		return nil, xerrors.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Occupation:   req.Occupation,
		Company:      req.Company,
		Skills:       req.Skills,
		Country:      req.Country,
		City:         req.City,
		LinkedinURL:  req.LinkedinURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.verifications.Upsert(ctx, HashEmail(email), domain.VerificationNot); err != nil {
		// registration already committed, don't fail the request over this
		s.logger.Warn("seed verification row failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	}

	return user, nil
}

// Login verifies the credentials and returns the user plus a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			return nil, "", xerrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", xerrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// GetUser fetches a user by ID, for wallet flows working off the token subject.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
