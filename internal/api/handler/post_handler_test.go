package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-platform/internal/core/domain"
	"github.com/openwave/social-platform/internal/core/ports"
)

type stubPostService struct {
	view       *ports.PostView
	feed       []ports.PostView
	likeResult *ports.LikeResult
	err        error

	lastFeed   ports.FeedInput
	lastCreate ports.CreatePostInput
	lastUpdate ports.UpdatePostInput
	deleted    string
}

func (s *stubPostService) Feed(_ context.Context, in ports.FeedInput) ([]ports.PostView, error) {
	s.lastFeed = in
	return s.feed, s.err
}

func (s *stubPostService) MyPosts(_ context.Context, _ string) ([]ports.PostView, error) {
	return s.feed, s.err
}

func (s *stubPostService) Get(_ context.Context, _, _ string) (*ports.PostView, error) {
	return s.view, s.err
}

func (s *stubPostService) Create(_ context.Context, in ports.CreatePostInput) (*ports.PostView, error) {
	s.lastCreate = in
	return s.view, s.err
}

func (s *stubPostService) Update(_ context.Context, in ports.UpdatePostInput) (*ports.PostView, error) {
	s.lastUpdate = in
	return s.view, s.err
}

func (s *stubPostService) Delete(_ context.Context, _, postID string) error {
	s.deleted = postID
	return s.err
}

func (s *stubPostService) ToggleLike(_ context.Context, _, _ string) (*ports.LikeResult, error) {
	return s.likeResult, s.err
}

func (s *stubPostService) AddComment(_ context.Context, _, _, _ string) (*ports.PostView, error) {
	return s.view, s.err
}

func (s *stubPostService) DeleteComment(_ context.Context, _, _, _ string) (*ports.PostView, error) {
	return s.view, s.err
}

func newPostContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	return c, rec
}

func samplePostView() *ports.PostView {
	return &ports.PostView{
		ID:         "p1",
		Author:     ports.UserRef{ID: "u1", Username: "alice"},
		Content:    "hello",
		Visibility: "Public",
		Likes:      []ports.UserRef{},
		Comments:   []ports.CommentView{},
	}
}

func TestPostHandler_Create(t *testing.T) {
	svc := &stubPostService{view: samplePostView()}
	h := NewPostHandler(svc, t.TempDir())

	c, rec := newPostContext(t, http.MethodPost, "/posts", `{"content":"hello","visibility":"Private"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.AuthorID != "u1" || svc.lastCreate.Content != "hello" || svc.lastCreate.Visibility != "Private" {
		t.Errorf("input not forwarded: %+v", svc.lastCreate)
	}

	var resp postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Message != "Post created successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestPostHandler_Create_MultipartWithImage(t *testing.T) {
	svc := &stubPostService{view: samplePostView()}
	uploads := t.TempDir()
	h := NewPostHandler(svc, uploads)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("content", "look at this"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "cat.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("not-really-a-png")); err != nil {
		t.Fatalf("write image: %v", err)
	}
	mw.Close()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	if !strings.HasPrefix(svc.lastCreate.Image, "/uploads/") {
		t.Fatalf("expected an /uploads/ reference, got %q", svc.lastCreate.Image)
	}
	saved := filepath.Join(uploads, strings.TrimPrefix(svc.lastCreate.Image, "/uploads/"))
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("uploaded file not written: %v", err)
	}
	if string(data) != "not-really-a-png" {
		t.Error("uploaded file content mismatch")
	}
}

func TestPostHandler_Create_Unauthenticated(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, t.TempDir())

	c, _ := newPostContext(t, http.MethodPost, "/posts", `{"content":"hi"}`)
	c.Set("user_id", nil)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_Create_InvalidPayload(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, t.TempDir())

	c, _ := newPostContext(t, http.MethodPost, "/posts", `{"content": not-json`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Create_InvalidVisibility(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, t.TempDir())

	c, _ := newPostContext(t, http.MethodPost, "/posts", `{"content":"hi","visibility":"Secret"}`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Feed_ForwardsFilter(t *testing.T) {
	svc := &stubPostService{feed: []ports.PostView{*samplePostView()}}
	h := NewPostHandler(svc, t.TempDir())

	c, rec := newPostContext(t, http.MethodGet, "/posts/feed?filter=following", "")
	if err := h.Feed(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.lastFeed.ViewerID != "u1" || svc.lastFeed.Filter != "following" {
		t.Errorf("feed input not forwarded: %+v", svc.lastFeed)
	}
}

func TestPostHandler_Get_ServiceErrorPassesThrough(t *testing.T) {
	svc := &stubPostService{err: domain.ErrForbidden}
	h := NewPostHandler(svc, t.TempDir())

	c, _ := newPostContext(t, http.MethodGet, "/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("domain errors must reach the central handler, got %v", err)
	}
}

func TestPostHandler_ToggleLike_Messages(t *testing.T) {
	for _, tc := range []struct {
		liked bool
		want  string
	}{
		{true, "Post liked"},
		{false, "Post unliked"},
	} {
		svc := &stubPostService{likeResult: &ports.LikeResult{Post: samplePostView(), Liked: tc.liked}}
		h := NewPostHandler(svc, t.TempDir())

		c, rec := newPostContext(t, http.MethodPost, "/posts/p1/like", "")
		c.SetParamNames("id")
		c.SetParamValues("p1")

		if err := h.ToggleLike(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var resp postResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.Message != tc.want {
			t.Errorf("expected %q, got %q", tc.want, resp.Message)
		}
	}
}

func TestPostHandler_AddComment_RequiresContent(t *testing.T) {
	h := NewPostHandler(&stubPostService{}, t.TempDir())

	c, _ := newPostContext(t, http.MethodPost, "/posts/p1/comments", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := h.AddComment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc, t.TempDir())

	c, rec := newPostContext(t, http.MethodDelete, "/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.deleted != "p1" {
		t.Errorf("post id not forwarded, got %q", svc.deleted)
	}
}
