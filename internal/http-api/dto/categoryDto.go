package dto

import "forumhub/internal/http-api/models"

// CreateCategoryDTO for creating a category
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse for returning category information
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromModelToCategoryResponse converts a Category model to CategoryResponse DTO
func FromModelToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}
