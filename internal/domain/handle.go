package domain

import (
	"regexp"
	"strings"
	"time"
)

// handlePattern is the allowed shape of a username: 3-30 characters,
// alphanumeric plus underscore and hyphen.
var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)

// ValidHandle reports whether the raw handle matches the allowed pattern.
// Validation runs on the raw form; comparison always runs on the normalized form.
func ValidHandle(handle string) bool {
	return handlePattern.MatchString(handle)
}

// NormalizeHandle returns the canonical form of a handle used as the
// registry addressing key. Lowercases and trims whitespace.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// HandleReservation records ownership of one normalized handle.
// The registry holds at most one reservation per normalized handle, and its
// owner's User document must carry a handle that normalizes back to it.
type HandleReservation struct {
	Handle        string    `json:"handle"`         // Normalized, the addressing key
	DisplayHandle string    `json:"display_handle"` // Original casing, for display
	OwnerID       string    `json:"owner_id"`
	ClaimedAt     time.Time `json:"claimed_at"`
}
