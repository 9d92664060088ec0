package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/blog-auth-api/internal/model"
)

// RoleRepo provides access to the 'roles' table.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// List returns all roles ordered by id.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetByID fetches a role by id.
func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM roles WHERE id=? LIMIT 1",
		id).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}

// GetByName fetches a role by its unique name.  Signup depends on the
// "user" role existing; a missing row there is a bootstrap error.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	name = strings.TrimSpace(name)
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM roles WHERE name=? LIMIT 1",
		name).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	return role, err
}

// Create inserts a role and returns its ID.  The unique index on name is
// the last line of defense behind the handler's pre-check.
func (r *RoleRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (name) VALUES (?)", strings.TrimSpace(name))
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrNameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateName renames a role.
func (r *RoleRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE roles SET name=?, updated_at=NOW() WHERE id=?",
		strings.TrimSpace(name), id)
	if err != nil {
		if isDuplicate(err) {
			return ErrNameExists
		}
		return err
	}
	return oneRow(res)
}

// Delete removes a role by id.
func (r *RoleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
