package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-platform/internal/api/metrics"
	"github.com/openwave/social-platform/internal/core/ports"
)

// PostHandler handles HTTP requests for posts, likes and comments.
type PostHandler struct {
	service    ports.PostService
	uploadsDir string
}

func NewPostHandler(service ports.PostService, uploadsDir string) *PostHandler {
	return &PostHandler{service: service, uploadsDir: uploadsDir}
}

// Feed handles GET /posts/feed?filter=all|following.
//
// @Summary      Get the viewer's feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "Feed filter: all (default) or following"
// @Success      200     {object}  feedResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.service.Feed(c.Request().Context(), ports.FeedInput{
		ViewerID: viewerID,
		Filter:   c.QueryParam("filter"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, feedResponse{Posts: posts})
}

// MyPosts handles GET /posts/my-posts — the viewer's own posts, private included.
//
// @Summary      Get the viewer's own posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedResponse
// @Failure      401  {object}  errorResponse
// @Router       /posts/my-posts [get]
func (h *PostHandler) MyPosts(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.service.MyPosts(c.Request().Context(), viewerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, feedResponse{Posts: posts})
}

// Get handles GET /posts/:id.
//
// @Summary      Get a single post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), viewerID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// Create handles POST /posts — JSON body or multipart form with an optional
// image part.
//
// @Summary      Create a new post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		AuthorID:   callerID,
		Content:    req.Content,
		Visibility: req.Visibility,
		Image:      image,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(post.Visibility).Inc()
	return c.JSON(http.StatusCreated, postResponse{Message: "Post created successfully", Post: post})
}

// Update handles PUT /posts/:id — author only.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to update"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), ports.UpdatePostInput{
		PostID:     c.Param("id"),
		CallerID:   callerID,
		Content:    req.Content,
		Visibility: req.Visibility,
		Image:      image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postResponse{Message: "Post updated successfully", Post: post})
}

// Delete handles DELETE /posts/:id — author only, comments go with the post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// ToggleLike handles POST /posts/:id/like.
//
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ToggleLike(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return err
	}

	msg := "Post unliked"
	action := "unlike"
	if result.Liked {
		msg = "Post liked"
		action = "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, postResponse{Message: msg, Post: result.Post})
}

// AddComment handles POST /posts/:id/comments.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.AddComment(c.Request().Context(), callerID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, postResponse{Message: "Comment added successfully", Post: post})
}

// DeleteComment handles DELETE /posts/:id/comments/:commentId. Only the
// post's author may remove comments, including those written by others.
//
// @Summary      Delete a comment
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Post id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  postResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /posts/{id}/comments/{commentId} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	post, err := h.service.DeleteComment(c.Request().Context(), callerID, c.Param("id"), c.Param("commentId"))
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, postResponse{Message: "Comment deleted successfully", Post: post})
}
