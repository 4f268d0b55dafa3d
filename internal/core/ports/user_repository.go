package ports

import (
	"context"

	"github.com/openwave/social-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and the
// follow graph embedded in them.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs resolves a batch of user ids in one query. Unknown ids are
	// silently omitted from the result.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// SearchByUsername returns up to limit users whose username contains the
	// query, case-insensitively.
	SearchByUsername(ctx context.Context, query string, limit int64) ([]*domain.User, error)

	// SetFollow writes or removes the directed follow edge follower→target on
	// both user documents together: the follower's following set and the
	// target's followers set are updated atomically, or neither is.
	// Returns the target's follower count after the write.
	SetFollow(ctx context.Context, followerID, targetID string, follow bool) (int64, error)
}
