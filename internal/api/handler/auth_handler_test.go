package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-platform/internal/core/domain"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error

	lastUsername string
	lastEmail    string
}

func (s *stubAuthService) Register(_ context.Context, username, email, _ string) (string, *domain.User, error) {
	s.lastUsername = username
	s.lastEmail = email
	return s.token, s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	s.lastEmail = email
	return s.token, s.user, s.err
}

func newAuthContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{token: "jwt-token", user: &domain.User{ID: "u1", Username: "alice"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Sup3rSecret!"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if svc.lastUsername != "alice" || svc.lastEmail != "alice@example.com" {
		t.Errorf("input not forwarded: %q %q", svc.lastUsername, svc.lastEmail)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Errorf("token missing from response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("password material must never appear in the response")
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, "/auth/register",
		`{"username":"alice","email":"not-an-email","password":"Sup3rSecret!"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(t, "/auth/register", `{"username":"alice"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicatePassesThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrUsernameTaken})

	c, _ := newAuthContext(t, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Sup3rSecret!"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("domain errors must reach the central handler, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{token: "jwt-token", user: &domain.User{ID: "u1", Username: "alice"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(t, "/auth/login",
		`{"email":"alice@example.com","password":"Sup3rSecret!"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_BadCredentialsPassThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := newAuthContext(t, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
