package domain

import "time"

// User models a registered account, including both sides of the follow graph.
// Followers and Following hold user ids and must stay symmetric: A appears in
// B.Followers exactly when B appears in A.Following.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Followers    []string  `json:"-"`
	Following    []string  `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Follows reports whether the user currently follows the given user id.
func (u *User) Follows(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// FollowedBy reports whether the given user id is among the user's followers.
func (u *User) FollowedBy(userID string) bool {
	for _, id := range u.Followers {
		if id == userID {
			return true
		}
	}
	return false
}
