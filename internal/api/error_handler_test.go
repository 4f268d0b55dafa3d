package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openwave/social-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError("post content is required"), http.StatusBadRequest, "post content is required"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access denied"},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound, "post not found"},
		{"comment not found", domain.ErrCommentNotFound, http.StatusNotFound, "comment not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest, "username already taken"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "email already taken"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
		{"unexpected", errors.New("mongo blew up"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("expected status %d, got %d", tc.wantCode, code)
			}
			if msg != tc.wantMsg {
				t.Errorf("expected message %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	code, msg := renderError(t, errors.Join(errors.New("context"), domain.ErrForbidden))
	if code != http.StatusForbidden || msg != "access denied" {
		t.Errorf("wrapped errors must still map, got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_DoesNotLeakInternalDetails(t *testing.T) {
	_, msg := renderError(t, errors.New("connection refused to 10.0.0.5:27017"))
	if msg != "internal server error" {
		t.Errorf("internal error details must not reach the client, got %q", msg)
	}
}
