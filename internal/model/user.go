package model

import "time"

// User represents an application user record as stored in the
// `users` table. The json tags are omitted here because these
// structs are primarily used internally by the repository layer;
// handlers define separate response types with appropriate JSON
// tags so that the password hash can never leak into a response.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Name          – display name (3..255 chars).
//  Email         – unique email address.
//  PasswordHash  – bcrypt hashed password.
//  RoleID        – foreign key into the roles table.
//  RoleName      – role name joined from the roles table; filled
//                  by queries that join roles, zero value otherwise.
//  EmailVerified – whether the address has been confirmed.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64    // users.id
	Name          string    // users.name
	Email         string    // users.email
	PasswordHash  string    // users.password_hash
	RoleID        uint64    // users.role_id (references roles.id)
	RoleName      string    // roles.name (joined)
	EmailVerified bool      // users.email_verified
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}
