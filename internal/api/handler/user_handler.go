package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-platform/internal/api/metrics"
	"github.com/openwave/social-platform/internal/core/ports"
)

// UserHandler handles profiles, user search and follow toggling.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type profileResponse struct {
	User *ports.ProfileView `json:"user"`
}

type searchResponse struct {
	Users []ports.UserSearchResult `json:"users"`
}

// Search handles GET /users/search?q=.
//
// @Summary      Search users by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Username substring"
// @Success      200  {object}  searchResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	users, err := h.service.Search(c.Request().Context(), viewerID, c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchResponse{Users: users})
}

// Profile handles GET /users/:username.
//
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Profile(c.Request().Context(), viewerID, c.Param("username"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: profile})
}

// ToggleFollow handles POST /users/:username/follow.
//
// @Summary      Follow or unfollow a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username to follow/unfollow"
// @Success      200       {object}  ports.FollowResult
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/{username}/follow [post]
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ToggleFollow(c.Request().Context(), callerID, c.Param("username"))
	if err != nil {
		return err
	}

	action := "unfollow"
	if result.Following {
		action = "follow"
	}
	metrics.FollowsToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, result)
}
