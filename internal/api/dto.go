package api

import (
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// UserResponse is the caller's own profile, including private fields.
type UserResponse struct {
	ID         string         `json:"id"`
	Handle     string         `json:"handle"`
	Email      string         `json:"email"`
	FullName   string         `json:"full_name,omitempty"`
	Bio        string         `json:"bio,omitempty"`
	ProfilePic string         `json:"profile_pic,omitempty"`
	Shelves    domain.Shelves `json:"shelves"`
	Favorites  []string       `json:"favorites"`
	Followers  []string       `json:"followers"`
	Following  []string       `json:"following"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PublicUserResponse is another user's profile as visible to any
// authenticated caller. Email and shelves stay private.
type PublicUserResponse struct {
	ID         string    `json:"id"`
	Handle     string    `json:"handle"`
	FullName   string    `json:"full_name,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	Followers  int       `json:"followers"`
	Following  int       `json:"following"`
	CreatedAt  time.Time `json:"created_at"`
}

// JournalResponse is a journal entry with derived vote counts.
// The raw voter lists stay server-side.
type JournalResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	BookKey   string    `json:"book_key"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating,omitempty"`
	IsPrivate bool      `json:"is_private"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Score     int       `json:"score"`
	MyVote    string    `json:"my_vote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	followers := u.Followers
	if followers == nil {
		followers = []string{}
	}
	following := u.Following
	if following == nil {
		following = []string{}
	}
	return UserResponse{
		ID:         u.ID,
		Handle:     u.Handle,
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		Shelves:    u.Shelves,
		Favorites:  favorites,
		Followers:  followers,
		Following:  following,
		CreatedAt:  u.CreatedAt,
	}
}

func toPublicUserResponse(u *domain.User) PublicUserResponse {
	return PublicUserResponse{
		ID:         u.ID,
		Handle:     u.Handle,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		Followers:  len(u.Followers),
		Following:  len(u.Following),
		CreatedAt:  u.CreatedAt,
	}
}

func toJournalResponse(j *domain.JournalEntry, requesterID string) JournalResponse {
	return JournalResponse{
		ID:        j.ID,
		OwnerID:   j.OwnerID,
		BookKey:   j.BookKey,
		Content:   j.Content,
		Rating:    j.Rating,
		IsPrivate: j.IsPrivate,
		Upvotes:   len(j.Upvoters),
		Downvotes: len(j.Downvoters),
		Score:     j.Score(),
		MyVote:    string(j.VoteOf(requesterID)),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func toJournalResponses(entries []*domain.JournalEntry, requesterID string) []JournalResponse {
	out := make([]JournalResponse, len(entries))
	for i, entry := range entries {
		out[i] = toJournalResponse(entry, requesterID)
	}
	return out
}
