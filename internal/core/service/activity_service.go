package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openwave/social-platform/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that appends engagement
// events to the audit collection.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single engagement event. Runs off the request path; a
// failure here never affects the operation that produced the event.
func (s *activityService) Record(ctx context.Context, event ports.ActivityEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("type", string(event.Type)).
		Str("actor", event.ActorID).
		Str("subject", event.SubjectID).
		Msg("activity recorded")

	return nil
}
