package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

// CreatePostDTO for creating a post
type CreatePostDTO struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Content     string  `json:"content" binding:"required,min=1"`
	CategoryIDs []int64 `json:"category_ids" binding:"omitempty,dive,gt=0"`
}

// UpdatePostDTO for updating a post; all fields optional
type UpdatePostDTO struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content     *string  `json:"content,omitempty" binding:"omitempty,min=1"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	CategoryIDs *[]int64 `json:"category_ids,omitempty"`
}

// PostResponse for returning post information
type PostResponse struct {
	ID         int64     `json:"id"`
	AuthorID   string    `json:"author_id"`
	Username   string    `json:"username,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	Categories []string  `json:"categories,omitempty"`
	Likes      int64     `json:"likes"`
	Dislikes   int64     `json:"dislikes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModelToPostResponse converts a Post model to PostResponse DTO
func FromModelToPostResponse(post *models.Post) *PostResponse {
	categories := make([]string, 0, len(post.Categories))
	for _, c := range post.Categories {
		categories = append(categories, c.Name)
	}

	return &PostResponse{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		Username:   post.Author.Username,
		Title:      post.Title,
		Content:    post.Content,
		Status:     post.Status,
		Categories: categories,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// PaginatedPostResponse for returning paginated posts
type PaginatedPostResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedPostResponse creates a paginated post response
func NewPaginatedPostResponse(data []PostResponse, total, page, pageSize int) *PaginatedPostResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedPostResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
