package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "https://api.circle.com", cfg.CircleBaseURL)
	assert.Equal(t, "ETH-SEPOLIA", cfg.CircleBlockchain)
	assert.Equal(t, "https://developer.worldcoin.org", cfg.WorldIDBaseURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CIRCLE_API_KEY", "key-from-env")
	t.Setenv("CIRCLE_HEX_ENCODED_ENTITY_SECRET_KEY", "aabb")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "key-from-env", cfg.CircleAPIKey)
	assert.Equal(t, "aabb", cfg.CircleEntitySecret)
}
