package ports

import (
	"context"
	"time"
)

// FollowResult is returned by ToggleFollow.
type FollowResult struct {
	Following      bool  `json:"isFollowing"`
	FollowersCount int64 `json:"followersCount"`
}

// ProfileView is the public profile of a user as seen by a viewer.
type ProfileView struct {
	Username         string    `json:"username"`
	CreatedAt        time.Time `json:"created_at"`
	PublicPostsCount int64     `json:"publicPostsCount"`
	FollowersCount   int       `json:"followersCount"`
	FollowingCount   int       `json:"followingCount"`
	IsFollowing      bool      `json:"isFollowing"`
}

// UserSearchResult is a single row of a username search.
type UserSearchResult struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FollowersCount int    `json:"followersCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// UserService defines profile, search and follow-graph use-cases.
type UserService interface {
	// ToggleFollow flips the caller→target follow edge and returns the new
	// state. Self-follow is rejected; a missing target is not found.
	ToggleFollow(ctx context.Context, callerID, targetUsername string) (*FollowResult, error)
	Profile(ctx context.Context, viewerID, username string) (*ProfileView, error)
	Search(ctx context.Context, viewerID, query string) ([]UserSearchResult, error)
}
