package repository

import (
	"errors"

	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

// ErrDuplicateFavorite is returned when an insert collides with the unique
// (user, post) index.
var ErrDuplicateFavorite = errors.New("post is already a favorite of this user")

type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	Delete(userID string, postID int64) error
	GetByUser(userID string, page, pageSize int) ([]models.Favorite, int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create a new favorite
func (r *favoriteRepository) Create(favorite *models.Favorite) error {
	err := r.db.Create(favorite).Error
	if isUniqueViolation(err) {
		return ErrDuplicateFavorite
	}
	return err
}

// Delete removes a user's favorite of a post
func (r *favoriteRepository) Delete(userID string, postID int64) error {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUser retrieves a user's favorites with pagination
func (r *favoriteRepository) GetByUser(userID string, page, pageSize int) ([]models.Favorite, int64, error) {
	var favorites []models.Favorite
	var total int64

	if err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("user_id = ?", userID).
		Preload("Post").
		Preload("Post.Author").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}
