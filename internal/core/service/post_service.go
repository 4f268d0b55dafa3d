package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/openwave/social-platform/internal/core/domain"
	"github.com/openwave/social-platform/internal/core/ports"
)

// PostService implements the feed assembler, the visibility gate, and the
// mutation engine for posts, likes and comments.
type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	cache    ports.FeedCache          // optional
	activity ports.ActivityDispatcher // optional
	logger   zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	cache ports.FeedCache,
	activity ports.ActivityDispatcher,
	logger zerolog.Logger,
) *PostService {
	return &PostService{posts: posts, users: users, cache: cache, activity: activity, logger: logger}
}

// Feed builds the viewer's feed: public posts, newest-first, capped at
// domain.FeedLimit. With filter=following only posts by authors the viewer
// follows are returned; an empty following set short-circuits to an empty
// feed without touching the store.
func (s *PostService) Feed(ctx context.Context, in ports.FeedInput) ([]ports.PostView, error) {
	switch in.Filter {
	case "", ports.FeedFilterAll:
		return s.publicFeed(ctx)
	case ports.FeedFilterFollowing:
		return s.followingFeed(ctx, in.ViewerID)
	default:
		return nil, domain.NewValidationError("filter must be 'all' or 'following'")
	}
}

func (s *PostService) publicFeed(ctx context.Context) ([]ports.PostView, error) {
	if s.cache != nil {
		if views, ok, err := s.cache.GetPublicFeed(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("feed cache read failed, querying store")
		} else if ok {
			return views, nil
		}
	}

	posts, err := s.posts.Find(ctx, ports.FeedQuery{PublicOnly: true, Limit: domain.FeedLimit})
	if err != nil {
		return nil, err
	}
	views, err := s.resolveViews(ctx, posts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublicFeed(ctx, views); err != nil {
			s.logger.Warn().Err(err).Msg("feed cache write failed")
		}
	}
	return views, nil
}

func (s *PostService) followingFeed(ctx context.Context, viewerID string) ([]ports.PostView, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(viewer.Following) == 0 {
		return []ports.PostView{}, nil
	}

	posts, err := s.posts.Find(ctx, ports.FeedQuery{
		PublicOnly: true,
		Authors:    viewer.Following,
		Limit:      domain.FeedLimit,
	})
	if err != nil {
		return nil, err
	}
	return s.resolveViews(ctx, posts)
}

// MyPosts returns every post by the viewer, private ones included, uncapped.
func (s *PostService) MyPosts(ctx context.Context, viewerID string) ([]ports.PostView, error) {
	posts, err := s.posts.Find(ctx, ports.FeedQuery{Authors: []string{viewerID}})
	if err != nil {
		return nil, err
	}
	return s.resolveViews(ctx, posts)
}

// Get returns a single post after the visibility gate. A private post viewed
// by anyone but its author yields ErrForbidden, not a not-found.
func (s *PostService) Get(ctx context.Context, viewerID, postID string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanBeViewedBy(viewerID) {
		return nil, domain.ErrForbidden
	}
	return s.resolveView(ctx, post)
}

func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*ports.PostView, error) {
	content := sanitizeContent(in.Content)
	if content == "" && in.Image == "" {
		return nil, domain.NewValidationError("post content is required")
	}
	if utf8.RuneCountInString(content) > domain.MaxPostContentLen {
		return nil, domain.NewValidationError("post cannot exceed 280 characters")
	}

	visibility := domain.Visibility(in.Visibility)
	if in.Visibility == "" {
		visibility = domain.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, domain.NewValidationError("visibility must be either Public or Private")
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Author:     in.AuthorID,
		Content:    content,
		Image:      in.Image,
		Visibility: visibility,
		Likes:      []string{},
		Comments:   []domain.Comment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("author", in.AuthorID).Msg("failed to create post")
		return nil, err
	}

	s.invalidateFeed(ctx)
	s.record(ports.ActivityEvent{Type: ports.ActivityPostCreated, ActorID: in.AuthorID, SubjectID: created.ID})
	s.logger.Info().Str("post_id", created.ID).Str("author", in.AuthorID).Msg("post created")

	return s.resolveView(ctx, created)
}

// Update applies a partial edit. Only the author may edit; absent fields are
// left untouched and updatedAt is bumped.
func (s *PostService) Update(ctx context.Context, in ports.UpdatePostInput) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Author != in.CallerID {
		return nil, domain.ErrForbidden
	}

	if content := sanitizeContent(in.Content); content != "" {
		if utf8.RuneCountInString(content) > domain.MaxPostContentLen {
			return nil, domain.NewValidationError("post cannot exceed 280 characters")
		}
		post.Content = content
	}
	if in.Visibility != "" {
		visibility := domain.Visibility(in.Visibility)
		if !visibility.Valid() {
			return nil, domain.NewValidationError("visibility must be either Public or Private")
		}
		post.Visibility = visibility
	}
	if in.Image != "" {
		post.Image = in.Image
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return s.resolveView(ctx, post)
}

// Delete removes the post and, with it, every comment it carries.
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author != callerID {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.invalidateFeed(ctx)
	s.logger.Info().Str("post_id", postID).Str("author", callerID).Msg("post deleted")
	return nil
}

// ToggleLike flips the caller's membership in the post's like set. Strictly a
// toggle: liking twice is an unlike, never an accumulation.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID string) (*ports.LikeResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanBeViewedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	liked := !post.LikedBy(callerID)
	if err := s.posts.SetLike(ctx, postID, callerID, liked); err != nil {
		return nil, err
	}

	if liked {
		post.Likes = append(post.Likes, callerID)
		s.record(ports.ActivityEvent{Type: ports.ActivityPostLiked, ActorID: callerID, SubjectID: postID})
	} else {
		post.Likes = removeID(post.Likes, callerID)
		s.record(ports.ActivityEvent{Type: ports.ActivityPostUnliked, ActorID: callerID, SubjectID: postID})
	}

	s.invalidateFeed(ctx)
	view, err := s.resolveView(ctx, post)
	if err != nil {
		return nil, err
	}
	return &ports.LikeResult{Post: view, Liked: liked}, nil
}

func (s *PostService) AddComment(ctx context.Context, callerID, postID, content string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanBeViewedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	content = sanitizeContent(content)
	if content == "" {
		return nil, domain.NewValidationError("comment content is required")
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentContentLen {
		return nil, domain.NewValidationError("comment cannot exceed 500 characters")
	}

	comment := domain.Comment{
		Author:    callerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.AddComment(ctx, postID, &comment); err != nil {
		return nil, err
	}
	post.Comments = append(post.Comments, comment)

	s.invalidateFeed(ctx)
	s.record(ports.ActivityEvent{Type: ports.ActivityCommented, ActorID: callerID, SubjectID: postID})
	return s.resolveView(ctx, post)
}

// DeleteComment removes a comment by id. Only the post's author may do this,
// regardless of who wrote the comment: post authors moderate their own posts.
func (s *PostService) DeleteComment(ctx context.Context, callerID, postID, commentID string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Author != callerID {
		return nil, domain.ErrForbidden
	}

	idx := post.CommentByID(commentID)
	if idx < 0 {
		return nil, domain.ErrCommentNotFound
	}

	if err := s.posts.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	s.invalidateFeed(ctx)
	return s.resolveView(ctx, post)
}

// resolveViews is the single read-model transform: it collects every user id
// referenced by the posts (authors, likes, comment authors), resolves them in
// one batched lookup, and projects the denormalized views.
func (s *PostService) resolveViews(ctx context.Context, posts []*domain.Post) ([]ports.PostView, error) {
	idSet := make(map[string]struct{})
	for _, p := range posts {
		idSet[p.Author] = struct{}{}
		for _, id := range p.Likes {
			idSet[id] = struct{}{}
		}
		for _, c := range p.Comments {
			idSet[c.Author] = struct{}{}
		}
	}

	usernames := make(map[string]string, len(idSet))
	if len(idSet) > 0 {
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			usernames[u.ID] = u.Username
		}
	}

	ref := func(id string) ports.UserRef {
		// A deleted account leaves a bare id behind.
		return ports.UserRef{ID: id, Username: usernames[id]}
	}

	views := make([]ports.PostView, 0, len(posts))
	for _, p := range posts {
		likes := make([]ports.UserRef, 0, len(p.Likes))
		for _, id := range p.Likes {
			likes = append(likes, ref(id))
		}
		comments := make([]ports.CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, ports.CommentView{
				ID:        c.ID,
				Author:    ref(c.Author),
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
			})
		}
		views = append(views, ports.PostView{
			ID:         p.ID,
			Author:     ref(p.Author),
			Content:    p.Content,
			Image:      p.Image,
			Visibility: string(p.Visibility),
			Likes:      likes,
			Comments:   comments,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		})
	}
	return views, nil
}

func (s *PostService) resolveView(ctx context.Context, post *domain.Post) (*ports.PostView, error) {
	views, err := s.resolveViews(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublicFeed(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("feed cache invalidation failed")
	}
}

func (s *PostService) record(event ports.ActivityEvent) {
	if s.activity != nil {
		s.activity.Enqueue(event)
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
