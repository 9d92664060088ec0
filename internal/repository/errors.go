// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios; the
// duplicate errors in particular back the two-layer uniqueness pattern:
// handlers pre-check for a friendly validation message, while the
// database unique index is the race-proof guarantee and surfaces as the
// same sentinel when two near-simultaneous writes slip past the check.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when inserting a user whose email address
// collides with the unique index on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrNameExists is returned when a role insert or rename collides with
// the unique index on roles.name.
var ErrNameExists = errors.New("name already exists")

// isDuplicate reports whether err is a MySQL duplicate key error
// (error code 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
