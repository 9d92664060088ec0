package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/middleware"
	"github.com/iliyamo/blog-auth-api/internal/model"
)

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	Users UserStore
}

func NewProfileHandler(users UserStore) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

// userResponse is the client-facing shape of a user.  The password hash
// has no field here, so it cannot leak by accident.
type userResponse struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.RoleName,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Index returns the calling user's profile with the role name populated.
func (h *ProfileHandler) Index(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return successData(c, "Get profile successfully", toUserResponse(u))
}
