package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 50
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
	log         *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comment", h.AddComment)
}

// GetPosts lists posts newest first, paged with ?skip= and ?limit=
func (h *PostHandler) GetPosts(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > maxPostLimit {
		limit = defaultPostLimit
	}

	posts, err := h.postService.ListPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), userID, &req)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusCreated, post)
}

// UpdatePost edits a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), c.Param("id"), userID, &req)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return serviceError(h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	result, err := h.postService.ToggleLike(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, result)
}

func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.AddComment(c.Request().Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusCreated, post)
}
