package xerrors

import "errors"
import "github.com/jackc/pgx/v5/pgconn"

func ParsePGErrorCode(err error) string {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input provided")
)

// Registration / Login
var (
	ErrEmailAlreadyInUse  = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email required")
	ErrPasswordRequired   = errors.New("password required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// Verification
var (
	ErrVerificationNotFound = errors.New("email not found")
	ErrInvalidVerification  = errors.New("verification status must be 'not', 'device' or 'orb'")
)

// Wallets
var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrWalletExists     = errors.New("user already has a wallet")
	ErrAmountRequired   = errors.New("amount required")
	ErrWalletIDRequired = errors.New("wallet ID required")
	ErrDestRequired     = errors.New("destination address required")
)

// Token
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
