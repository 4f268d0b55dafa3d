package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openwave/social-platform/internal/core/domain"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubPostRepo) {
	t.Helper()
	users := newStubUserRepo()
	posts := newStubPostRepo()
	svc := NewUserService(users, posts, nil, discardLogger)
	return svc, users, posts
}

func TestUserService_ToggleFollow_RoundTrip(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")
	bob := users.add("bob")

	result, err := svc.ToggleFollow(context.Background(), alice.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Following {
		t.Error("first toggle must follow")
	}
	if result.FollowersCount != 1 {
		t.Errorf("expected 1 follower, got %d", result.FollowersCount)
	}

	result, err = svc.ToggleFollow(context.Background(), alice.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Following {
		t.Error("second toggle must unfollow")
	}
	if result.FollowersCount != 0 {
		t.Errorf("expected 0 followers after the round trip, got %d", result.FollowersCount)
	}
	if len(users.byID[alice.ID].Following) != 0 || len(users.byID[bob.ID].Followers) != 0 {
		t.Error("both sides of the edge must return to their original state")
	}
}

func TestUserService_ToggleFollow_UpdatesBothSides(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")
	bob := users.add("bob")

	if _, err := svc.ToggleFollow(context.Background(), alice.ID, "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !users.byID[alice.ID].Follows(bob.ID) {
		t.Error("follower's following list must contain the target")
	}
	if !users.byID[bob.ID].FollowedBy(alice.ID) {
		t.Error("target's followers list must contain the follower")
	}
}

func TestUserService_ToggleFollow_Self(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")

	_, err := svc.ToggleFollow(context.Background(), alice.ID, "alice")

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_ToggleFollow_TargetNotFound(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")

	if _, err := svc.ToggleFollow(context.Background(), alice.ID, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Profile_Counts(t *testing.T) {
	svc, users, posts := newUserFixture(t)
	alice := users.add("alice")
	bob := users.add("bob")
	carol := users.add("carol")

	now := time.Now().UTC()
	posts.addPost(alice.ID, domain.VisibilityPublic, "one", now)
	posts.addPost(alice.ID, domain.VisibilityPublic, "two", now)
	posts.addPost(alice.ID, domain.VisibilityPrivate, "hidden", now)

	if _, err := users.SetFollow(context.Background(), bob.ID, alice.ID, true); err != nil {
		t.Fatalf("seed follow: %v", err)
	}
	if _, err := users.SetFollow(context.Background(), alice.ID, carol.ID, true); err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	profile, err := svc.Profile(context.Background(), bob.ID, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Username != "alice" {
		t.Errorf("wrong profile: %q", profile.Username)
	}
	if profile.PublicPostsCount != 2 {
		t.Errorf("private posts must not count, got %d", profile.PublicPostsCount)
	}
	if profile.FollowersCount != 1 || profile.FollowingCount != 1 {
		t.Errorf("wrong graph counts: %d followers, %d following", profile.FollowersCount, profile.FollowingCount)
	}
	if !profile.IsFollowing {
		t.Error("viewer follows alice, isFollowing must be true")
	}
}

func TestUserService_Profile_NotFound(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	bob := users.add("bob")

	if _, err := svc.Profile(context.Background(), bob.ID, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Search_ExcludesCaller(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")
	users.add("alina")
	users.add("bob")

	results, err := svc.Search(context.Background(), alice.ID, "ali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Username != "alina" {
		t.Errorf("caller must be excluded from results, got %q", results[0].Username)
	}
}

func TestUserService_Search_CaseInsensitive(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	bob := users.add("bob")
	users.add("Alice")

	results, err := svc.Search(context.Background(), bob.ID, "ALICE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Username != "Alice" {
		t.Fatalf("expected a case-insensitive match, got %+v", results)
	}
}

func TestUserService_Search_EmptyQuery(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	bob := users.add("bob")

	_, err := svc.Search(context.Background(), bob.ID, "   ")

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_Search_ReportsFollowState(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	alice := users.add("alice")
	bob := users.add("bob")
	users.add("bobby")

	if _, err := users.SetFollow(context.Background(), alice.ID, bob.ID, true); err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	results, err := svc.Search(context.Background(), alice.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		switch r.Username {
		case "bob":
			if !r.IsFollowing {
				t.Error("bob is followed, isFollowing must be true")
			}
			if r.FollowersCount != 1 {
				t.Errorf("bob has 1 follower, got %d", r.FollowersCount)
			}
		case "bobby":
			if r.IsFollowing {
				t.Error("bobby is not followed")
			}
		}
	}
}
