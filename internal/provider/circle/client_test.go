package circle

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/wisemik/veretha-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Re = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func testEntity(t *testing.T) (*security.EntitySecret, *rsa.PrivateKey, []byte) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	secret := make([]byte, 32)
	_, err = rand.Read(secret)
	require.NoError(t, err)

	es, err := security.NewEntitySecret(hex.EncodeToString(secret), string(pubPEM))
	require.NoError(t, err)

	return es, priv, secret
}

func TestCreateWallet_Envelope(t *testing.T) {
	es, priv, secret := testEntity(t)

	var got createWalletRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/w3s/developer/wallets", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"wallets":[{"id":"w-1","address":"0xabc"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "ETH-SEPOLIA", es)
	id, addr, err := c.CreateWallet(context.Background(), "ws-1", "Alice", "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "w-1", id)
	assert.Equal(t, "0xabc", addr)

	// envelope fields the provider contract cares about
	assert.True(t, uuidV4Re.MatchString(got.IdempotencyKey), "idempotencyKey %q", got.IdempotencyKey)
	assert.Equal(t, []string{"ETH-SEPOLIA"}, got.Blockchains)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "ws-1", got.WalletSetID)
	require.Len(t, got.Metadata, 1)
	assert.Equal(t, "Alice", got.Metadata[0].Name)

	raw, err := base64.StdEncoding.DecodeString(got.EntitySecretCiphertext)
	require.NoError(t, err)
	decrypted, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)
}

func TestCreateTransfer(t *testing.T) {
	es, _, _ := testEntity(t)

	var got transferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/w3s/developer/transactions/transfer", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data":{"id":"tx-42"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "ETH-SEPOLIA", es)
	txID, err := c.CreateTransfer(context.Background(), "w-1", "0xdest", "1.50", "token-1", "HIGH")
	require.NoError(t, err)
	assert.Equal(t, "tx-42", txID)

	assert.Equal(t, []string{"1.50"}, got.Amounts)
	assert.Equal(t, "0xdest", got.DestinationAddress)
	assert.Equal(t, "token-1", got.TokenID)
	assert.Equal(t, "HIGH", got.FeeLevel)
	assert.Equal(t, "w-1", got.WalletID)
	assert.True(t, uuidV4Re.MatchString(got.IdempotencyKey))
	assert.NotEmpty(t, got.EntitySecretCiphertext)
}

func TestCreateTransfer_FreshEnvelopePerCall(t *testing.T) {
	es, _, _ := testEntity(t)

	var ciphertexts, keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req transferRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		ciphertexts = append(ciphertexts, req.EntitySecretCiphertext)
		keys = append(keys, req.IdempotencyKey)
		w.Write([]byte(`{"data":{"id":"tx"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "ETH-SEPOLIA", es)
	for i := 0; i < 2; i++ {
		_, err := c.CreateTransfer(context.Background(), "w", "0xd", "1", "t", "HIGH")
		require.NoError(t, err)
	}

	require.Len(t, ciphertexts, 2)
	assert.NotEqual(t, ciphertexts[0], ciphertexts[1], "ciphertext must differ per call")
	assert.NotEqual(t, keys[0], keys[1], "idempotency key must differ per call")
}

func TestProviderError_Relayed(t *testing.T) {
	es, _, _ := testEntity(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":155101,"message":"invalid entity secret"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "ETH-SEPOLIA", es)
	_, err := c.CreateWalletSet(context.Background(), "user@example.com")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 155101, apiErr.Code)
	assert.Equal(t, "invalid entity secret", apiErr.Message)
}

func TestCreateWalletSet_MissingID(t *testing.T) {
	es, _, _ := testEntity(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "ETH-SEPOLIA", es)
	_, err := c.CreateWalletSet(context.Background(), "set")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "walletSet.id")
}

func TestWalletBalance(t *testing.T) {
	es, _, _ := testEntity(t)

	t.Run("with balances", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/w3s/wallets/w-1/balances", r.URL.Path)
			w.Write([]byte(`{"data":{"tokenBalances":[{"amount":"12.34","token":{"id":"t1","symbol":"USDC"}}]}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "k", "ETH-SEPOLIA", es)
		amount, err := c.WalletBalance(context.Background(), "w-1")
		require.NoError(t, err)
		assert.Equal(t, "12.34", amount)
	})

	t.Run("empty wallet", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"tokenBalances":[]}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "k", "ETH-SEPOLIA", es)
		amount, err := c.WalletBalance(context.Background(), "w-1")
		require.NoError(t, err)
		assert.Equal(t, "0", amount)
	})
}
