package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/blog-auth-api/internal/utils"
)

const (
	accessSecret = "access-secret"
	resetSecret  = "reset-secret"
)

// okHandler reports the claims it sees, proving the middleware attached
// them before the handler ran.
func okHandler(c echo.Context) error {
	claims, _ := ClaimsFrom(c)
	return c.JSON(http.StatusOK, echo.Map{"id": claims.UserID, "role": claims.Role})
}

func doAuth(t *testing.T, cookie string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/protected", okHandler, mw...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validToken(t *testing.T, claims utils.AuthClaims) string {
	t.Helper()
	raw, err := utils.NewAccessToken(accessSecret, claims)
	require.NoError(t, err)
	return raw
}

func TestAuthenticateMissingCookie(t *testing.T) {
	rec := doAuth(t, "", Authenticate(accessSecret))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	rec := doAuth(t, "garbage", Authenticate(accessSecret))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthenticateWrongSecret(t *testing.T) {
	raw, err := utils.NewAccessToken("other-secret", utils.AuthClaims{UserID: 1, Role: "user"})
	require.NoError(t, err)

	rec := doAuth(t, raw, Authenticate(accessSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpired(t *testing.T) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": float64(5),
		"role":   "user",
		"iat":    now.Add(-3 * time.Hour).Unix(),
		"exp":    now.Add(-time.Minute).Unix(),
	})
	raw, err := tok.SignedString([]byte(accessSecret))
	require.NoError(t, err)

	rec := doAuth(t, raw, Authenticate(accessSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthenticateAttachesClaims(t *testing.T) {
	raw := validToken(t, utils.AuthClaims{UserID: 9, Name: "Alice", Role: "admin", EmailVerified: true})

	rec := doAuth(t, raw, Authenticate(accessSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestRequireAdmin(t *testing.T) {
	admin := validToken(t, utils.AuthClaims{UserID: 1, Role: "admin", EmailVerified: true})
	user := validToken(t, utils.AuthClaims{UserID: 2, Role: "user", EmailVerified: true})

	rec := doAuth(t, admin, Authenticate(accessSecret), RequireAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doAuth(t, user, Authenticate(accessSecret), RequireAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
}

func TestRequireVerifiedEmail(t *testing.T) {
	verified := validToken(t, utils.AuthClaims{UserID: 1, Role: "user", EmailVerified: true})
	unverified := validToken(t, utils.AuthClaims{UserID: 2, Role: "user", EmailVerified: false})

	rec := doAuth(t, verified, Authenticate(accessSecret), RequireVerifiedEmail)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doAuth(t, unverified, Authenticate(accessSecret), RequireVerifiedEmail)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "verify your email")
}

// The chain short-circuits in declared order: a caller failing both
// checks sees the admin error because that check runs first.
func TestCheckOrderAdminBeforeVerified(t *testing.T) {
	neither := validToken(t, utils.AuthClaims{UserID: 3, Role: "user", EmailVerified: false})

	rec := doAuth(t, neither, Authenticate(accessSecret), RequireAdmin, RequireVerifiedEmail)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
	assert.NotContains(t, rec.Body.String(), "verify your email")
}

// An unverified admin passes the admin check and fails the verified
// check, proving both checks actually run when order allows.
func TestCheckOrderUnverifiedAdmin(t *testing.T) {
	unverifiedAdmin := validToken(t, utils.AuthClaims{UserID: 4, Role: "admin", EmailVerified: false})

	rec := doAuth(t, unverifiedAdmin, Authenticate(accessSecret), RequireAdmin, RequireVerifiedEmail)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "verify your email")
}

func TestAuthenticateReset(t *testing.T) {
	e := echo.New()
	e.POST("/reset/:token", func(c echo.Context) error {
		claims, _ := ResetClaimsFrom(c)
		return c.JSON(http.StatusOK, echo.Map{"email": claims.Email})
	}, AuthenticateReset(resetSecret))

	raw, err := utils.NewResetToken(resetSecret, "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/reset/"+raw, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestAuthenticateResetRejectsAccessToken(t *testing.T) {
	e := echo.New()
	e.POST("/reset/:token", okHandler, AuthenticateReset(resetSecret))

	// A valid access token must not satisfy the reset check even
	// though both are HS256 JWTs.
	raw := validToken(t, utils.AuthClaims{UserID: 1, Role: "user"})

	req := httptest.NewRequest(http.MethodPost, "/reset/"+raw, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is invalid")
}
