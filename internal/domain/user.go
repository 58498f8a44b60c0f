package domain

import (
	"slices"
	"time"
)

// User represents an Inkshelf account. The document is keyed by ID in the
// store; Handle is the mutable display-cased username whose uniqueness is
// enforced through the handle registry, never through this document alone.
type User struct {
	ID           string    `json:"id"`
	Handle       string    `json:"handle"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	FullName     string    `json:"full_name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ProfilePic   string    `json:"profile_pic,omitempty"`
	Shelves      Shelves   `json:"shelves"`
	Favorites    []string  `json:"favorites,omitempty"` // Book keys
	Followers    []string  `json:"followers,omitempty"` // User IDs
	Following    []string  `json:"following,omitempty"` // User IDs
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// Touch updates the modification timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// IsFavorite reports whether the book is in the user's favorites.
func (u *User) IsFavorite(bookKey string) bool {
	return slices.Contains(u.Favorites, bookKey)
}

// AddFavorite adds a book key to the favorites set.
// Returns false if it was already present.
func (u *User) AddFavorite(bookKey string) bool {
	if u.IsFavorite(bookKey) {
		return false
	}
	u.Favorites = append(u.Favorites, bookKey)
	return true
}

// RemoveFavorite removes a book key from the favorites set.
// Returns false if it was not present.
func (u *User) RemoveFavorite(bookKey string) bool {
	before := len(u.Favorites)
	u.Favorites = slices.DeleteFunc(u.Favorites, func(k string) bool { return k == bookKey })
	return len(u.Favorites) != before
}

// IsFollowing reports whether the user follows the given user ID.
func (u *User) IsFollowing(userID string) bool {
	return slices.Contains(u.Following, userID)
}

// Name returns the best available display name for the user.
func (u *User) Name() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Handle
}
