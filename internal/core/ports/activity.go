package ports

import (
	"context"
	"time"
)

// ActivityType labels an engagement event in the audit trail.
type ActivityType string

const (
	ActivityPostCreated ActivityType = "post_created"
	ActivityPostLiked   ActivityType = "post_liked"
	ActivityPostUnliked ActivityType = "post_unliked"
	ActivityCommented   ActivityType = "commented"
	ActivityFollowed    ActivityType = "followed"
	ActivityUnfollowed  ActivityType = "unfollowed"
)

// ActivityEvent records a single engagement action. SubjectID is the entity
// acted on: a post id for post events, a user id for follow events.
type ActivityEvent struct {
	Type      ActivityType
	ActorID   string
	SubjectID string
	CreatedAt time.Time
}

// ActivityRepository persists engagement events to the append-only audit
// collection.
type ActivityRepository interface {
	Insert(ctx context.Context, event *ActivityEvent) error
}

// ActivityService processes engagement events off the request path.
type ActivityService interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivityDispatcher enqueues engagement events for asynchronous recording.
// Enqueue must never block the request path.
type ActivityDispatcher interface {
	Enqueue(event ActivityEvent)
}
