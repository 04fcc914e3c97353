package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
	GetByIDs(ids []int64) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create a new category
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetAll retrieves every category
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetByIDs retrieves the categories matching the given ids
func (r *categoryRepository) GetByIDs(ids []int64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}
