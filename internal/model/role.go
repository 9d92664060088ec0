package model

import "time"

// Role represents a row in the `roles` table.  Role names are
// globally unique; the repository performs an optimistic pre-check
// for a friendly validation error and the table's unique index is
// the actual race-proof guarantee.
//
// Fields:
//  ID        – numeric identifier of the role.
//  Name      – unique role name (e.g. "admin", "user").
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Role struct {
	ID        uint64    // roles.id
	Name      string    // roles.name
	CreatedAt time.Time // roles.created_at
	UpdatedAt time.Time // roles.updated_at
}
