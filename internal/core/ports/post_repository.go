package ports

import (
	"context"

	"github.com/openwave/social-platform/internal/core/domain"
)

// FeedQuery carries the logical filters for a feed read.
// Results are always sorted newest-first by creation time, with the
// store-assigned id as the deterministic tiebreak.
type FeedQuery struct {
	// PublicOnly restricts results to posts with Public visibility.
	PublicOnly bool
	// Authors, when non-nil, restricts results to posts by these author ids.
	Authors []string
	// Limit caps the result set; 0 means no cap.
	Limit int64
}

// PostRepository defines persistence operations for posts and their embedded
// like sets and comment lists.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Find(ctx context.Context, q FeedQuery) ([]*domain.Post, error)
	// Update persists the post's content, image, visibility and updatedAt.
	Update(ctx context.Context, post *domain.Post) error
	// Delete removes the post document; its comments go with it.
	Delete(ctx context.Context, id string) error

	// SetLike adds (liked=true) or removes (liked=false) the user id from the
	// post's like set in a single per-document update. Adding an id already
	// present, or removing one absent, is a no-op.
	SetLike(ctx context.Context, postID, userID string, liked bool) error
	// AddComment appends the comment to the post and fills in its assigned id.
	AddComment(ctx context.Context, postID string, comment *domain.Comment) error
	RemoveComment(ctx context.Context, postID, commentID string) error

	CountPublicByAuthor(ctx context.Context, authorID string) (int64, error)
}
