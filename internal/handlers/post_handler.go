package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PostHandler handles the feed and comments
type PostHandler struct {
	service services.PostServiceInterface
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service services.PostServiceInterface) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// ListFeed handles GET /api/v1/posts
func (h *PostHandler) ListFeed(c *gin.Context) {
	posts, err := h.service.ListFeed(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListComments handles GET /api/v1/posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id", "post")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), middleware.CallerID(c), postID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /api/v1/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id", "post")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), middleware.CallerID(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
