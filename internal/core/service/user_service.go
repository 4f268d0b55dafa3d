package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openwave/social-platform/internal/core/domain"
	"github.com/openwave/social-platform/internal/core/ports"
)

const searchResultLimit = 20

// UserService implements the follow graph engine, profiles and user search.
type UserService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	activity ports.ActivityDispatcher // optional
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	posts ports.PostRepository,
	activity ports.ActivityDispatcher,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, posts: posts, activity: activity, logger: logger}
}

// ToggleFollow flips the caller→target follow edge. Both user documents are
// updated together by the repository; an odd number of toggles leaves the
// edge present, an even number restores the original state.
func (s *UserService) ToggleFollow(ctx context.Context, callerID, targetUsername string) (*ports.FollowResult, error) {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == callerID {
		return nil, domain.NewValidationError("you cannot follow yourself")
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	follow := !caller.Follows(target.ID)
	count, err := s.users.SetFollow(ctx, callerID, target.ID, follow)
	if err != nil {
		return nil, err
	}

	if follow {
		s.record(ports.ActivityEvent{Type: ports.ActivityFollowed, ActorID: callerID, SubjectID: target.ID})
	} else {
		s.record(ports.ActivityEvent{Type: ports.ActivityUnfollowed, ActorID: callerID, SubjectID: target.ID})
	}

	s.logger.Info().
		Str("follower", callerID).
		Str("target", target.ID).
		Bool("following", follow).
		Msg("follow toggled")

	return &ports.FollowResult{Following: follow, FollowersCount: count}, nil
}

// Profile assembles the public view of a user as seen by the viewer.
func (s *UserService) Profile(ctx context.Context, viewerID, username string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	publicCount, err := s.posts.CountPublicByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.ProfileView{
		Username:         user.Username,
		CreatedAt:        user.CreatedAt,
		PublicPostsCount: publicCount,
		FollowersCount:   len(user.Followers),
		FollowingCount:   len(user.Following),
		IsFollowing:      user.FollowedBy(viewerID),
	}, nil
}

// Search finds users by case-insensitive username substring, excluding the
// caller from the results.
func (s *UserService) Search(ctx context.Context, viewerID, query string) ([]ports.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("search query is required")
	}

	users, err := s.users.SearchByUsername(ctx, query, searchResultLimit)
	if err != nil {
		return nil, err
	}

	results := make([]ports.UserSearchResult, 0, len(users))
	for _, u := range users {
		if u.ID == viewerID {
			continue
		}
		results = append(results, ports.UserSearchResult{
			ID:             u.ID,
			Username:       u.Username,
			FollowersCount: len(u.Followers),
			IsFollowing:    u.FollowedBy(viewerID),
		})
	}
	return results, nil
}

func (s *UserService) record(event ports.ActivityEvent) {
	if s.activity != nil {
		s.activity.Enqueue(event)
	}
}
