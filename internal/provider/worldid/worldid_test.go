package worldid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Success(t *testing.T) {
	var got VerifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/verify/app_test", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"nullifier_hash":"0xnull"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app_test")
	res, err := c.Verify(context.Background(), &VerifyRequest{
		NullifierHash:     "0xnull",
		MerkleRoot:        "0xroot",
		Proof:             "0xproof",
		VerificationLevel: "orb",
		Action:            "login",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xnull", res.NullifierHash)
	assert.Equal(t, "orb", got.VerificationLevel)
	assert.Equal(t, "login", got.Action)
}

func TestVerify_RejectedProof(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"invalid_merkle_root"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app_test")
	_, err := c.Verify(context.Background(), &VerifyRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_merkle_root", apiErr.Detail)
}
