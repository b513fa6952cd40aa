package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/pkg/xerrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.Email]; ok {
		return xerrors.ErrEmailAlreadyInUse
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

type fakeVerificationStore struct {
	rows map[string]domain.VerificationStatus
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{rows: map[string]domain.VerificationStatus{}}
}

func (f *fakeVerificationStore) Upsert(_ context.Context, emailHash string, status domain.VerificationStatus) error {
	f.rows[emailHash] = status
	return nil
}

func (f *fakeVerificationStore) GetByEmailHash(_ context.Context, emailHash string) (*domain.Verification, error) {
	status, ok := f.rows[emailHash]
	if !ok {
		return nil, xerrors.ErrVerificationNotFound
	}
	return &domain.Verification{EmailHash: emailHash, Status: status}, nil
}

func newTestAuthService(users *fakeUserStore, verifications *fakeVerificationStore) *AuthService {
	return NewAuthService(users, verifications, "test-secret", zap.NewNop())
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	verifications := newFakeVerificationStore()
	svc := newTestAuthService(users, verifications)

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email, "email must be normalised")
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	// verification row seeded at "not"
	v, err := verifications.GetByEmailHash(context.Background(), HashEmail("alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationNot, v.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeVerificationStore())

	req := &RegisterRequest{Email: "bob@example.com", Password: "pw12345678"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, errors.Is(err, xerrors.ErrEmailAlreadyInUse))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeVerificationStore())

	_, err := svc.Register(context.Background(), &RegisterRequest{Email: "not-an-email", Password: "pw"})
	assert.True(t, errors.Is(err, xerrors.ErrInvalidEmailFormat))

	_, err = svc.Register(context.Background(), &RegisterRequest{Email: "ok@example.com"})
	assert.True(t, errors.Is(err, xerrors.ErrPasswordRequired))
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeVerificationStore())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "carol@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "carol@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", user.Email)

	// the token must be verifiable with the same secret and carry the user ID
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "carol@example.com", claims["email"])
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeVerificationStore())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "dave@example.com", Password: "right-password",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "dave@example.com", "wrong-password")
	assert.True(t, errors.Is(err, xerrors.ErrInvalidCredentials))

	// unknown user answers the same way as a bad password
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.True(t, errors.Is(err, xerrors.ErrInvalidCredentials))
}
