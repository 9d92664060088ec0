package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/config"
	"github.com/iliyamo/blog-auth-api/internal/middleware"
	"github.com/iliyamo/blog-auth-api/internal/queue"
	"github.com/iliyamo/blog-auth-api/internal/repository"
	"github.com/iliyamo/blog-auth-api/internal/utils"
)

// Messages reused across the auth handlers.  The login failure message
// is deliberately identical for unknown email and wrong password so the
// endpoint cannot be used to enumerate accounts, and the token message
// is shared by the verification and reset flows.
const (
	msgInvalidCredentials = "Authentication failed. Please check your credentials"
	msgInvalidToken       = "The provided token is invalid. Please ensure you have the correct token"
	msgWeakPassword       = "Password is at least 6 characters long"
)

// minPasswordLen is the only password policy: anything shorter is
// rejected before any store mutation happens.
const minPasswordLen = 6

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Roles  RoleStore
	Tokens TokenStore
	Mail   EmailPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, roles RoleStore, tokens TokenStore, mail EmailPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Roles: roles, Tokens: tokens, Mail: mail}
}

// ----- DTOs -----

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type passwordReq struct {
	Password string `json:"password"`
}
type emailReq struct {
	Email string `json:"email"`
}

// Signup: create the user with the default "user" role and kick off
// email verification.  The user record is committed regardless of what
// happens to the verification email; a failed send only means the user
// re-triggers it later.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Name, email and password are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Optimistic duplicate check for the friendly message; the unique
	// index on users.email is what actually prevents the race.
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return fail(c, http.StatusBadRequest, "Email already registered. Please use a different email or log in.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if len(req.Password) < minPasswordLen {
		return fail(c, http.StatusBadRequest, msgWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	// Every signup lands in the default role.  The roles table is
	// seeded at deploy time; a missing "user" row is a bootstrap error,
	// not a client mistake.
	role, err := h.Roles.GetByName(ctx, "user")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusInternalServerError, `default role "user" is missing`)
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if _, err := h.Users.Create(ctx, req.Name, req.Email, hash, role.ID); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "Email already registered. Please use a different email or log in.")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	// Fire-and-forget: the token record is written first so a dropped
	// event never produces a dead link, then the send is delegated to
	// the mailer worker.  Failures here are logged, never surfaced.
	if tok, err := utils.NewEmailToken(); err != nil {
		log.Printf("signup: generate verification token for %s: %v", req.Email, err)
	} else if err := h.Tokens.Store(ctx, req.Email, tok); err != nil {
		log.Printf("signup: store verification token for %s: %v", req.Email, err)
	} else {
		_ = h.Mail.PublishEmail(ctx, queue.EmailEvent{
			Kind:  queue.EmailKindVerification,
			Email: req.Email,
			Token: tok,
		})
	}

	return success(c, "Signup successfully! Please check your email to verify your account.")
}

// Login: verify credentials and set the access-token cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	// No re-login while a token cookie is present; the client must log
	// out first.
	if cookie, err := c.Cookie(middleware.AccessCookie); err == nil && cookie.Value != "" {
		return fail(c, http.StatusBadRequest, "You are already logged in")
	}

	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, msgInvalidCredentials)
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusBadRequest, msgInvalidCredentials)
	}

	token, err := utils.NewAccessToken(h.Cfg.AccessTokenSecret, utils.AuthClaims{
		UserID:        u.ID,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
		Role:          u.RoleName,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(utils.AccessTokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	return success(c, "Login successfully")
}

// Logout clears the cookie.  The token itself stays valid until its
// natural expiry; there is no server-side session to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	return success(c, "Logged out")
}

// VerifiedEmail consumes a single-use verification token from the URL:
// mark the account verified, then delete the record so the link can
// never be replayed.
func (h *AuthHandler) VerifiedEmail(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return fail(c, http.StatusBadRequest, msgInvalidToken)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.Tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, msgInvalidToken)
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if err := h.Users.MarkEmailVerified(ctx, rec.Email); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	if err := h.Tokens.DeleteByToken(ctx, token); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return success(c, "Verified email successfully")
}

// ChangePassword rehashes and stores a new password for the
// authenticated user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}

	var req passwordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, "User does not exist")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if len(req.Password) < minPasswordLen {
		return fail(c, http.StatusBadRequest, msgWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return success(c, "Change password successfully")
}

// ForgotPassword starts the reset flow for an existing account: issue a
// signed reset token, persist the single-use record, and delegate the
// email to the mailer worker.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, "User with this email does not exist")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	token, err := utils.NewResetToken(h.Cfg.ResetTokenSecret, req.Email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	// The record must exist before the mail goes out; without it the
	// link in the email is dead on arrival.
	if err := h.Tokens.Store(ctx, req.Email, token); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	_ = h.Mail.PublishEmail(ctx, queue.EmailEvent{
		Kind:  queue.EmailKindReset,
		Email: req.Email,
		Token: token,
	})

	return success(c, "Check your email to reset your password")
}

// ResetPassword finishes the reset flow.  The acting identity comes
// from the signed reset token's email claim; the store record is only
// the single-use gate and is deleted once the new password is saved.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	claims, ok := middleware.ResetClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusBadRequest, msgInvalidToken)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Tokens.FindByToken(ctx, claims.Token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, msgInvalidToken)
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	var req passwordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.Users.GetByEmail(ctx, claims.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusBadRequest, "User does not exist")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if len(req.Password) < minPasswordLen {
		return fail(c, http.StatusBadRequest, msgWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	if err := h.Users.UpdatePasswordByEmail(ctx, claims.Email, hash); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	// A lost race here means another request already consumed the
	// token; the password is set either way.
	if err := h.Tokens.DeleteByToken(ctx, claims.Token); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return success(c, "Reset password successfully")
}
