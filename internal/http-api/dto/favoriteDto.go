package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

// FavoriteResponse for returning a favorited post
type FavoriteResponse struct {
	PostID      int64     `json:"post_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// FromModelToFavoriteResponse converts a Favorite model to FavoriteResponse DTO
func FromModelToFavoriteResponse(favorite *models.Favorite) *FavoriteResponse {
	return &FavoriteResponse{
		PostID:      favorite.PostID,
		Title:       favorite.Post.Title,
		Author:      favorite.Post.Author.Username,
		FavoritedAt: favorite.CreatedAt,
	}
}

// PaginatedFavoriteResponse for returning paginated favorites
type PaginatedFavoriteResponse struct {
	Data       []FavoriteResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

// NewPaginatedFavoriteResponse creates a paginated favorite response
func NewPaginatedFavoriteResponse(data []FavoriteResponse, total, page, pageSize int) *PaginatedFavoriteResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedFavoriteResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
