package handler

import (
	"net/http"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService      service.PostService
	lifecycleService service.LifecycleService
}

func NewPostHandler(postService service.PostService, lifecycleService service.LifecycleService) *PostHandler {
	return &PostHandler{
		postService:      postService,
		lifecycleService: lifecycleService,
	}
}

// RegisterRoutes registers post-related routes
func (h *PostHandler) RegisterRoutes(posts, users, admin *gin.RouterGroup) {
	posts.POST("", h.Create)
	posts.GET("/:post_id", h.Get)
	posts.PUT("/:post_id", h.Update)
	posts.DELETE("/:post_id", h.Delete)

	users.GET("/:user_id/posts", h.ListByAuthor)

	admin.DELETE("/posts/:post_id", h.DeleteByAdmin)
}

// Create creates a new post
// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.CreatePost(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Get retrieves a post with its reaction counts
// GET /api/posts/:post_id
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update updates the caller's own post
// PUT /api/posts/:post_id
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.UpdatePost(postID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete deletes the caller's own post with its full cascade
// DELETE /api/posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.DeletePost(postID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// DeleteByAdmin deletes any post, admin only
// DELETE /api/admin/posts/:post_id
func (h *PostHandler) DeleteByAdmin(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	if err := h.lifecycleService.DeletePostByAdmin(postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// ListByAuthor lists a user's posts with pagination
// GET /api/users/:user_id/posts
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	authorID := c.Param("user_id")
	page, pageSize := pagination(c)

	posts, err := h.postService.GetAuthorPosts(authorID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
