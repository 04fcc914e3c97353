package dto

import (
	"time"

	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"
)

// CreateCommentDTO for creating a comment or reply
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateCommentDTO for updating a comment; both fields optional
type UpdateCommentDTO struct {
	Content *string `json:"content,omitempty" binding:"omitempty,min=1,max=5000"`
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// ListRepliesDTO for filtering and sorting a comment's replies
type ListRepliesDTO struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=likes date"`
	Order  string `form:"order" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	Username     string    `json:"username"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	LikesCount   int64     `json:"likes_count"`
	RepliesCount int64     `json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		Username:  comment.Author.Username,
		Content:   comment.Content,
		Status:    comment.Status,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// FromCountsToCommentResponse converts a comment row with derived counts
func FromCountsToCommentResponse(comment *repository.CommentWithCounts) *CommentResponse {
	resp := FromModelToCommentResponse(&comment.Comment)
	resp.LikesCount = comment.LikesCount
	resp.RepliesCount = comment.RepliesCount
	return resp
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
