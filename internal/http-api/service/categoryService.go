package service

import (
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"
)

type CategoryService interface {
	CreateCategory(name string) (*dto.CategoryResponse, error)
	GetCategories() ([]dto.CategoryResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name string) (*dto.CategoryResponse, error) {
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

// GetCategories retrieves every category
func (s *categoryService) GetCategories() ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return responses, nil
}
