package model

import "time"

// Token models an entry in the `tokens` table: a single-use record
// tying an opaque token string to an email address.  The same table
// backs both email verification and password reset flows; a record
// is deleted the moment it is successfully consumed, which is what
// makes replay impossible.
//
// Fields:
//  ID        – primary key identifier.
//  Email     – address the token was issued for.
//  Token     – opaque token value (unique).
//  CreatedAt – timestamp of creation.
type Token struct {
	ID        uint64    // tokens.id
	Email     string    // tokens.email
	Token     string    // tokens.token
	CreatedAt time.Time // tokens.created_at
}
