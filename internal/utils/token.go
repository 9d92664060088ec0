package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand" // secure random number generation
	"encoding/hex" // hex encoding for opaque tokens
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token lifetimes.  Access tokens authenticate API calls for two hours;
// reset tokens are only good for thirty minutes.  Both are absolute
// expiries embedded in the token; there is no server-side session table.
const (
	AccessTokenTTL = 2 * time.Hour
	ResetTokenTTL  = 30 * time.Minute
)

// Sentinel errors returned by the parse functions.  Expired tokens are
// distinguished from malformed or tampered ones so that middleware can
// report them differently.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AuthClaims is the identity carried inside an access token and attached
// to the request context once the token has been verified.  The Role and
// EmailVerified fields are snapshots taken at issuance time: changing a
// user's role or verifying their email has no effect on tokens already
// in the wild until they expire and are reissued.
type AuthClaims struct {
	UserID        uint64
	Name          string
	EmailVerified bool
	Role          string
}

// NewAccessToken builds and signs an HS256 JWT carrying the user's
// identity claims.  The payload contains exactly the four identity
// claims plus issued-at and expiry.
func NewAccessToken(secret string, claims AuthClaims) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":        claims.UserID,
		"username":      claims.Name,
		"emailVerified": claims.EmailVerified,
		"role":          claims.Role,
		"iat":           now.Unix(),
		"exp":           now.Add(AccessTokenTTL).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// NewResetToken signs a short-lived HS256 JWT whose only identity claim
// is the email address.  Reset tokens use a secret distinct from the
// access token secret so the two trust domains cannot forge each other.
func NewResetToken(secret, email string) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ResetTokenTTL).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry of an access token and
// returns the embedded identity claims.
func ParseAccessToken(secret, raw string) (AuthClaims, error) {
	mc, err := parseHS256(secret, raw)
	if err != nil {
		return AuthClaims{}, err
	}
	var claims AuthClaims
	// JWT numbers decode as float64.
	id, ok := mc["userId"].(float64)
	if !ok {
		return AuthClaims{}, ErrTokenInvalid
	}
	claims.UserID = uint64(id)
	if v, ok := mc["username"].(string); ok {
		claims.Name = v
	}
	if v, ok := mc["emailVerified"].(bool); ok {
		claims.EmailVerified = v
	}
	if v, ok := mc["role"].(string); ok {
		claims.Role = v
	}
	return claims, nil
}

// ParseResetToken verifies a reset token against the reset secret and
// returns the email claim.
func ParseResetToken(secret, raw string) (string, error) {
	mc, err := parseHS256(secret, raw)
	if err != nil {
		return "", err
	}
	email, ok := mc["email"].(string)
	if !ok || email == "" {
		return "", ErrTokenInvalid
	}
	return email, nil
}

// parseHS256 validates an HS256 JWT and returns its claim map.  Tokens
// signed with any other method are rejected.
func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return mc, nil
}

// NewEmailToken returns an opaque random token used in email
// verification links.  64 bytes of entropy encoded as 128 hex chars;
// the value is stored as-is in the tokens table and consumed once.
func NewEmailToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
