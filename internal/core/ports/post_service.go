package ports

import (
	"context"
	"time"
)

// Feed filter modes accepted by GET /posts/feed.
const (
	FeedFilterAll       = "all"
	FeedFilterFollowing = "following"
)

// UserRef is the denormalized {id, username} pair used wherever a user id is
// resolved for display.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	ID        string    `json:"id"`
	Author    UserRef   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is the read model for a post: author, likes and comment authors
// all resolved to display references.
type PostView struct {
	ID         string        `json:"id"`
	Author     UserRef       `json:"author"`
	Content    string        `json:"content"`
	Image      string        `json:"image,omitempty"`
	Visibility string        `json:"visibility"`
	Likes      []UserRef     `json:"likes"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// CreatePostInput carries a new post. Image is the stored upload reference,
// never raw bytes.
type CreatePostInput struct {
	AuthorID   string
	Content    string
	Visibility string
	Image      string
}

// UpdatePostInput carries a partial post edit; empty fields are left as-is.
type UpdatePostInput struct {
	PostID     string
	CallerID   string
	Content    string
	Visibility string
	Image      string
}

// FeedInput selects the viewer's feed mode.
type FeedInput struct {
	ViewerID string
	Filter   string // "all" (default) or "following"
}

// LikeResult is returned by ToggleLike.
type LikeResult struct {
	Post  *PostView
	Liked bool // state after the toggle
}

// PostService defines the feed, visibility and mutation use-cases.
type PostService interface {
	Feed(ctx context.Context, in FeedInput) ([]PostView, error)
	// MyPosts returns all of the viewer's own posts, private included, uncapped.
	MyPosts(ctx context.Context, viewerID string) ([]PostView, error)
	Get(ctx context.Context, viewerID, postID string) (*PostView, error)
	Create(ctx context.Context, in CreatePostInput) (*PostView, error)
	Update(ctx context.Context, in UpdatePostInput) (*PostView, error)
	Delete(ctx context.Context, callerID, postID string) error
	ToggleLike(ctx context.Context, callerID, postID string) (*LikeResult, error)
	AddComment(ctx context.Context, callerID, postID, content string) (*PostView, error)
	DeleteComment(ctx context.Context, callerID, postID, commentID string) (*PostView, error)
}

// FeedCache caches the assembled public feed. The public feed is viewer
// independent, so a single entry suffices.
type FeedCache interface {
	GetPublicFeed(ctx context.Context) ([]PostView, bool, error)
	SetPublicFeed(ctx context.Context, posts []PostView) error
	InvalidatePublicFeed(ctx context.Context) error
}
