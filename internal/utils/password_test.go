package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", h1)
	assert.NotEqual(t, h1, h2, "each hash must carry a fresh salt")
	assert.True(t, VerifyPassword(h1, "secret1"))
	assert.True(t, VerifyPassword(h2, "secret1"))
}

func TestVerifyPassword(t *testing.T) {
	h, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, VerifyPassword(h, "secret2"))
	assert.False(t, VerifyPassword(h, ""))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret1"), "malformed hash is a non-match, not an error")
	assert.False(t, VerifyPassword("", "secret1"))
}
