package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openwave/social-platform/internal/core/ports"
)

const collectionActivity = "activity_events"

// ActivityRepository appends engagement events to the audit collection.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type mongoActivityEvent struct {
	Type      string `bson:"type"`
	Actor     string `bson:"actor"`
	Subject   string `bson:"subject"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, event *ports.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivityEvent{
		Type:      string(event.Type),
		Actor:     event.ActorID,
		Subject:   event.SubjectID,
		CreatedAt: event.CreatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}
