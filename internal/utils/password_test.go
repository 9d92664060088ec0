package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt salts every hash; two hashes of the same input differ.
	assert.NotEqual(t, a, b)
}
