package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/blog-auth-api/internal/model"
)

// UserRepo provides access to the 'users' table.  Reads join the roles
// table so callers get the role name without a second round trip.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role_id,
	COALESCE(r.name, ''), u.email_verified, u.created_at, u.updated_at`

// Create inserts a user with the given password hash and role and returns
// the new ID.  The caller hashes the password; the repository never sees
// the plaintext.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string, roleID uint64) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role_id) VALUES (?,?,?,?)",
		name, email, passwordHash, roleID)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email, role name included.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx,
		"SELECT "+userColumns+" FROM users u LEFT JOIN roles r ON r.id=u.role_id WHERE u.email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id, role name included.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx,
		"SELECT "+userColumns+" FROM users u LEFT JOIN roles r ON r.id=u.role_id WHERE u.id=? LIMIT 1",
		id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.RoleName, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdatePassword replaces the password hash for a user by id.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?",
		passwordHash, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// UpdatePasswordByEmail replaces the password hash for a user by email.
// Used by the reset flow, where the acting identity is an email claim.
func (r *UserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE email=?",
		passwordHash, email)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// MarkEmailVerified flips the email_verified flag for the given address.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email_verified=1, updated_at=NOW() WHERE email=?",
		email)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// oneRow maps "zero rows touched" onto sql.ErrNoRows so handlers can
// treat a missing record uniformly with failed lookups.
func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
