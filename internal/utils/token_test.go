package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "access-secret-for-tests"

func TestAccessTokenRoundtrip(t *testing.T) {
	in := AuthClaims{
		UserID:        42,
		Name:          "Alice",
		EmailVerified: true,
		Role:          "admin",
	}

	raw, err := NewAccessToken(testSecret, in)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	out, err := ParseAccessToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	raw, err := NewAccessToken(testSecret, AuthClaims{UserID: 1, Role: "user"})
	require.NoError(t, err)

	_, err = ParseAccessToken("a-different-secret", raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenMalformed(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	// Hand-roll a token whose expiry is already in the past.
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":        float64(7),
		"username":      "Bob",
		"emailVerified": false,
		"role":          "user",
		"iat":           now.Add(-3 * time.Hour).Unix(),
		"exp":           now.Add(-time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResetTokenRoundtrip(t *testing.T) {
	raw, err := NewResetToken("reset-secret", "a@x.com")
	require.NoError(t, err)

	email, err := ParseResetToken("reset-secret", raw)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestResetTokenSecretSeparation(t *testing.T) {
	// A reset token must never verify under the access secret and vice
	// versa: the two trust domains use distinct keys.
	reset, err := NewResetToken("reset-secret", "a@x.com")
	require.NoError(t, err)
	_, err = ParseResetToken(testSecret, reset)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	access, err := NewAccessToken(testSecret, AuthClaims{UserID: 1, Role: "user"})
	require.NoError(t, err)
	_, err = ParseResetToken("reset-secret", access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResetTokenMissingEmailClaim(t *testing.T) {
	// Even with a matching secret, an access token has no email claim
	// and must not pass the reset parse.
	access, err := NewAccessToken("shared", AuthClaims{UserID: 1, Role: "user"})
	require.NoError(t, err)

	_, err = ParseResetToken("shared", access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewEmailToken(t *testing.T) {
	a, err := NewEmailToken()
	require.NoError(t, err)
	assert.Len(t, a, 128) // 64 bytes hex encoded

	b, err := NewEmailToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
