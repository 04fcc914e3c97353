package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	GetByID(postID int64) (*models.Post, error)
	GetByAuthor(authorID string, page, pageSize int) ([]models.Post, int64, error)
	GetByCategory(categoryID int64, page, pageSize int) ([]models.Post, int64, error)
	GetIDsByAuthor(authorID string) ([]int64, error)
	ReplaceCategories(post *models.Post, categories []models.Category) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create a new post with its category links
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update an existing post
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// GetByID retrieves a post by its ID
func (r *postRepository) GetByID(postID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", postID).
		Preload("Author").
		Preload("Categories").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByAuthor retrieves all posts by a specific author with pagination
func (r *postRepository) GetByAuthor(authorID string, page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("author_id = ?", authorID).
		Preload("Categories").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// GetByCategory retrieves all posts linked to a category with pagination
func (r *postRepository) GetByCategory(categoryID int64, page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	base := r.db.Model(&models.Post{}).
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.category_id = ?", categoryID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.category_id = ?", categoryID).
		Preload("Author").
		Order("posts.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// GetIDsByAuthor retrieves the ids of every post authored by a user
func (r *postRepository) GetIDsByAuthor(authorID string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

// ReplaceCategories swaps the post's category links for the given set
func (r *postRepository) ReplaceCategories(post *models.Post, categories []models.Category) error {
	return r.db.Model(post).Association("Categories").Replace(categories)
}
