package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/model"
	"github.com/iliyamo/blog-auth-api/internal/repository"
)

// RoleHandler implements the admin-only role CRUD.  Name uniqueness is
// enforced twice: a pre-check produces the friendly validation error
// for the common case, and the unique index catches the race where two
// near-simultaneous creates both pass the check.  Both paths report the
// same validation error, so clients cannot tell which layer fired.
type RoleHandler struct {
	Roles RoleStore
}

func NewRoleHandler(roles RoleStore) *RoleHandler {
	return &RoleHandler{Roles: roles}
}

type roleReq struct {
	Name string `json:"name"`
}

type roleResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRoleResponse(r model.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// Index lists all roles.
func (h *RoleHandler) Index(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	roles, err := h.Roles.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return successList(c, "Get all roles", len(out), out)
}

// validateRoleName runs the field checks shared by Store and Update.
// existingID is the role being renamed (zero for creates) so renaming a
// role to its own current name is not flagged as a duplicate.
func (h *RoleHandler) validateRoleName(c echo.Context, name string, existingID uint64) []fieldError {
	var errs []fieldError
	if name == "" {
		errs = append(errs, fieldError{"name": "The name field is required."})
		return errs
	}
	if len(name) < 3 || len(name) > 255 {
		errs = append(errs, fieldError{"name": "The name field must be between 3 and 255 characters."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if found, err := h.Roles.GetByName(ctx, name); err == nil && found.ID != existingID {
		errs = append(errs, fieldError{"name": "The name field already exists."})
	}
	return errs
}

// Store creates a new role.
func (h *RoleHandler) Store(c echo.Context) error {
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)

	if errs := h.validateRoleName(c, req.Name, 0); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Roles.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return failValidation(c, []fieldError{{"name": "The name field already exists."}})
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return successData(c, "Create role successfully", toRoleResponse(role))
}

// Update renames an existing role.
func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Role not found")
	}

	var req roleReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)

	if errs := h.validateRoleName(c, req.Name, id); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Roles.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Role not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if err := h.Roles.UpdateName(ctx, id, req.Name); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return failValidation(c, []fieldError{{"name": "The name field already exists."}})
		}
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Role not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return successData(c, "Update role successfully", toRoleResponse(role))
}

// Destroy deletes a role.
func (h *RoleHandler) Destroy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Role not found")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Roles.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Role not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return success(c, "Delete role successfully")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
