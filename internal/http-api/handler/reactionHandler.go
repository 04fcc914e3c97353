package handler

import (
	"net/http"

	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionService service.ReactionService
	ratingService   service.RatingService
}

func NewReactionHandler(reactionService service.ReactionService, ratingService service.RatingService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		ratingService:   ratingService,
	}
}

// RegisterRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterRoutes(posts, comments, users *gin.RouterGroup) {
	posts.PUT("/:post_id/reaction", h.SetPostReaction)
	posts.DELETE("/:post_id/reaction", h.ClearPostReaction)

	comments.PUT("/:comment_id/reaction", h.SetCommentReaction)
	comments.DELETE("/:comment_id/reaction", h.ClearCommentReaction)

	users.GET("/:user_id/rating", h.GetRating)
}

// SetPostReaction places or flips a like/dislike on a post
// PUT /api/posts/:post_id/reaction
func (h *ReactionHandler) SetPostReaction(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	h.setReaction(c, models.PostTarget(postID))
}

// SetCommentReaction places or flips a like/dislike on a comment
// PUT /api/comments/:comment_id/reaction
func (h *ReactionHandler) SetCommentReaction(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	h.setReaction(c, models.CommentTarget(commentID))
}

func (h *ReactionHandler) setReaction(c *gin.Context, target models.ReactionTarget) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SetReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.reactionService.SetReaction(userID, target, models.ReactionType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reaction)
}

// ClearPostReaction removes the caller's reaction from a post
// DELETE /api/posts/:post_id/reaction
func (h *ReactionHandler) ClearPostReaction(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	h.clearReaction(c, models.PostTarget(postID))
}

// ClearCommentReaction removes the caller's reaction from a comment
// DELETE /api/comments/:comment_id/reaction
func (h *ReactionHandler) ClearCommentReaction(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	h.clearReaction(c, models.CommentTarget(commentID))
}

func (h *ReactionHandler) clearReaction(c *gin.Context, target models.ReactionTarget) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reactionService.ClearReaction(userID, target); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reaction removed"})
}

// GetRating returns a user's cached reputation score
// GET /api/users/:user_id/rating
func (h *ReactionHandler) GetRating(c *gin.Context) {
	userID := c.Param("user_id")

	rating, err := h.ratingService.GetRating(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{UserID: userID, Rating: rating})
}
