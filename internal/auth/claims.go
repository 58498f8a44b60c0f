package auth

import "time"

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type AccessClaims struct {
	UserID     string    `json:"user_id"`
	Handle     string    `json:"handle"`
	TokenID    string    `json:"jti"`
	Expiration time.Time `json:"exp"`
}
