package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/blog-auth-api/internal/middleware"
	"github.com/iliyamo/blog-auth-api/internal/utils"
)

func TestProfileIndex(t *testing.T) {
	users := &fakeUserStore{}
	u := seedUser(t, users, "Alice", "alice@example.com", "secret1", "user", true)
	h := NewProfileHandler(users)

	c, rec := jsonCtx(http.MethodGet, "/api/profile", "")
	middleware.WithClaims(c, utils.AuthClaims{UserID: u.ID, Name: u.Name, Role: "user", EmailVerified: true})
	require.NoError(t, h.Index(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Get profile successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "user", data["role"])
	assert.Equal(t, true, data["email_verified"])

	// The password hash must never appear anywhere in the payload.
	assert.NotContains(t, rec.Body.String(), u.PasswordHash)
	assert.NotContains(t, body["data"], "password")
}

func TestProfileIndexUnknownUser(t *testing.T) {
	h := NewProfileHandler(&fakeUserStore{})

	c, rec := jsonCtx(http.MethodGet, "/api/profile", "")
	middleware.WithClaims(c, utils.AuthClaims{UserID: 404, Name: "ghost", Role: "user"})
	require.NoError(t, h.Index(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
}

func TestProfileIndexRequiresClaims(t *testing.T) {
	h := NewProfileHandler(&fakeUserStore{})

	c, rec := jsonCtx(http.MethodGet, "/api/profile", "")
	require.NoError(t, h.Index(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
