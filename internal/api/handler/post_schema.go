package handler

import "github.com/openwave/social-platform/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createPostRequest binds from JSON or multipart form fields; the optional
// image file travels alongside as the "image" form part.
type createPostRequest struct {
	Content    string `json:"content"    form:"content"`
	Visibility string `json:"visibility" form:"visibility" validate:"omitempty,oneof=Public Private"`
}

type updatePostRequest struct {
	Content    string `json:"content"    form:"content"`
	Visibility string `json:"visibility" form:"visibility" validate:"omitempty,oneof=Public Private"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type postResponse struct {
	Message string          `json:"message,omitempty"`
	Post    *ports.PostView `json:"post"`
}

type feedResponse struct {
	Posts []ports.PostView `json:"posts"`
}

type messageResponse struct {
	Message string `json:"message"`
}
