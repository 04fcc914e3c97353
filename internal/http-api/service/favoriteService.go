package service

import (
	"errors"

	"forumhub/internal/http-api/apperrors"
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type FavoriteService interface {
	AddFavorite(userID string, postID int64) error
	RemoveFavorite(userID string, postID int64) error
	GetUserFavorites(userID string, page, pageSize int) (*dto.PaginatedFavoriteResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	postRepo     repository.PostRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, postRepo repository.PostRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		postRepo:     postRepo,
	}
}

// AddFavorite bookmarks a post for a user
func (s *favoriteService) AddFavorite(userID string, postID int64) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("post %d", postID)
		}
		return err
	}
	if !post.IsActive() {
		return apperrors.Unavailable("post %d is inactive", postID)
	}

	favorite := &models.Favorite{
		UserID: userID,
		PostID: postID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return apperrors.Conflict("post %d is already a favorite", postID)
		}
		return err
	}
	return nil
}

// RemoveFavorite removes a user's bookmark of a post
func (s *favoriteService) RemoveFavorite(userID string, postID int64) error {
	if err := s.favoriteRepo.Delete(userID, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("post %d is not a favorite", postID)
		}
		return err
	}
	return nil
}

// GetUserFavorites retrieves a user's favorites with pagination
func (s *favoriteService) GetUserFavorites(userID string, page, pageSize int) (*dto.PaginatedFavoriteResponse, error) {
	favorites, total, err := s.favoriteRepo.GetByUser(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		responses = append(responses, *dto.FromModelToFavoriteResponse(&favorites[i]))
	}

	return dto.NewPaginatedFavoriteResponse(responses, int(total), page, pageSize), nil
}
