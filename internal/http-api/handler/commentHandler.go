package handler

import (
	"net/http"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(posts, comments, admin *gin.RouterGroup) {
	// Post comments
	posts.GET("/:post_id/comments", h.ListByPost)
	posts.POST("/:post_id/comments", h.Create)

	// Comment operations
	comments.POST("/:comment_id/replies", h.CreateReply)
	comments.GET("/:comment_id/replies", h.ListReplies)
	comments.PUT("/:comment_id", h.Update)
	comments.DELETE("/:comment_id", h.Delete)

	// Privileged path
	admin.DELETE("/comments/:comment_id", h.DeleteByAdmin)
}

// Create creates a new top-level comment on a post
// POST /api/posts/:post_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(postID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// CreateReply creates a reply under an existing comment
// POST /api/comments/:comment_id/replies
func (h *CommentHandler) CreateReply(c *gin.Context) {
	parentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.commentService.CreateReply(parentID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// ListReplies lists a comment's replies with derived counts
// GET /api/comments/:comment_id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	var query dto.ListRepliesDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replies, err := h.commentService.ListReplies(commentID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": replies})
}

// Update updates an existing comment
// PUT /api/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete deletes the caller's own comment
// DELETE /api/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(commentID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// DeleteByAdmin deletes any comment, admin only
// DELETE /api/admin/comments/:comment_id
func (h *CommentHandler) DeleteByAdmin(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteCommentByAdmin(commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListByPost lists a post's top-level comments with pagination
// GET /api/posts/:post_id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	comments, err := h.commentService.GetPostComments(postID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
