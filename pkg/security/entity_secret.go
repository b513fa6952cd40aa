// pkg/security/entity_secret.go
package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EntitySecretLen is the exact length Circle requires for the raw entity secret.
const EntitySecretLen = 32

var (
	ErrInvalidSecretLength = errors.New("invalid entity secret length, expected 32 bytes")
	ErrInvalidPublicKey    = errors.New("invalid entity public key")
)

// EntitySecret holds the provider entity secret and encryption public key.
// It is built once at startup from configuration and is immutable afterwards.
type EntitySecret struct {
	secret []byte
	pub    *rsa.PublicKey
}

// NewEntitySecret parses the hex encoded secret and PEM encoded RSA public key.
// A secret that does not decode to exactly 32 bytes, or an unparseable key,
// is a deployment misconfiguration and must abort startup rather than retry.
func NewEntitySecret(hexEncodedSecret, publicKeyPEM string) (*EntitySecret, error) {
	secret, err := hex.DecodeString(hexEncodedSecret)
	if err != nil {
		return nil, fmt.Errorf("decode entity secret: %w", err)
	}
	if len(secret) != EntitySecretLen {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSecretLength, len(secret))
	}

	pub, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	return &EntitySecret{secret: secret, pub: pub}, nil
}

// Envelope produces the two fields every privileged wallet-provider call needs:
// the entity secret encrypted with RSA-OAEP (MGF1 and hash both SHA-256) and
// base64 encoded, plus a fresh idempotency key (UUID v4).
//
// OAEP padding is randomised, so the ciphertext differs on every call. Callers
// must never cache or compare ciphertexts.
func (e *EntitySecret) Envelope() (ciphertext string, idempotencyKey string, err error) {
	encrypted, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, e.pub, e.secret, nil)
	if err != nil {
		return "", "", fmt.Errorf("encrypt entity secret: %w", err)
	}

	return base64.StdEncoding.EncodeToString(encrypted), uuid.New().String(), nil
}

// parseRSAPublicKey accepts both PKIX ("PUBLIC KEY") and PKCS#1
// ("RSA PUBLIC KEY") PEM blocks, since the provider console has handed out both.
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPublicKey)
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidPublicKey)
		}
		return rsaPub, nil
	}

	rsaPub, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return rsaPub, nil
}
