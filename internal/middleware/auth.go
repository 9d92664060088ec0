package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/utils"
)

// Context keys under which verified claims are stored.  Handlers should
// use ClaimsFrom / ResetClaimsFrom rather than touching these directly.
const (
	authKey  = "auth"
	resetKey = "reset"
)

// AccessCookie is the cookie carrying the access token.  It is set on
// login (httpOnly, SameSite=Strict, Secure) and cleared on logout.
const AccessCookie = "accesstoken"

// ResetClaims is the identity attached to a request that passed the
// reset-token check.  It carries only the email from the token payload
// plus the raw token so the handler can consume the matching store record.
type ResetClaims struct {
	Email string
	Token string
}

// Authenticate returns middleware that validates the access-token cookie
// and attaches the decoded identity claims to the request context.  The
// chain of checks short-circuits: a request missing a cookie never
// reaches the signature check, and a request failing here never reaches
// a handler.  This is the only channel through which handlers learn who
// is calling.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required"})
			}
			claims, err := utils.ParseAccessToken(secret, cookie.Value)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token expired. Please log in again"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}
			c.Set(authKey, claims)
			return next(c)
		}
	}
}

// AuthenticateReset returns middleware that validates the single-use
// reset token taken from the :token path parameter.  Reset tokens are
// verified against their own secret; an access token can never pass
// this check.  Only the email claim is attached downstream.
func AuthenticateReset(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Param("token")
			if raw == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "The provided token is invalid. Please ensure you have the correct token"})
			}
			email, err := utils.ParseResetToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token expired. Please request a new password reset"})
				}
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "The provided token is invalid. Please ensure you have the correct token"})
			}
			c.Set(resetKey, ResetClaims{Email: email, Token: raw})
			return next(c)
		}
	}
}

// RequireAdmin rejects any authenticated request whose role claim is not
// "admin".  The role is a snapshot taken when the token was issued;
// a demotion takes effect only once the old token expires.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin access required"})
		}
		return next(c)
	}
}

// RequireVerifiedEmail rejects authenticated requests from accounts that
// have not confirmed their email address.  Registered after RequireAdmin
// where both apply, so a non-admin unverified caller sees the role error.
func RequireVerifiedEmail(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok || !claims.EmailVerified {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Please verify your email address"})
		}
		return next(c)
	}
}

// WithClaims attaches identity claims directly, bypassing token
// verification.  Handler tests use it to simulate an authenticated
// request; production requests always go through Authenticate.
func WithClaims(c echo.Context, claims utils.AuthClaims) {
	c.Set(authKey, claims)
}

// WithResetClaims is the reset-flow counterpart of WithClaims.
func WithResetClaims(c echo.Context, claims ResetClaims) {
	c.Set(resetKey, claims)
}

// ClaimsFrom returns the identity claims attached by Authenticate.
func ClaimsFrom(c echo.Context) (utils.AuthClaims, bool) {
	claims, ok := c.Get(authKey).(utils.AuthClaims)
	return claims, ok
}

// ResetClaimsFrom returns the claims attached by AuthenticateReset.
func ResetClaimsFrom(c echo.Context) (ResetClaims, bool) {
	claims, ok := c.Get(resetKey).(ResetClaims)
	return claims, ok
}
