package service

import (
	"context"
	"errors"
	"log/slog"

	"forumhub/internal/cache"
	"forumhub/internal/http-api/apperrors"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// RatingService maintains the cached reputation score of a user. The score
// is always recomputable from the reaction rows, so the users.rating column
// and the redis entry are projections, never sources of truth.
type RatingService interface {
	RecomputeRating(userID string) (int, error)
	GetRating(userID string) (int, error)
}

type ratingService struct {
	reactionRepo repository.ReactionRepository
	userRepo     repository.UserRepository
	ratingCache  *cache.RatingCache
	logger       *slog.Logger
}

func NewRatingService(
	reactionRepo repository.ReactionRepository,
	userRepo repository.UserRepository,
	ratingCache *cache.RatingCache,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		reactionRepo: reactionRepo,
		userRepo:     userRepo,
		ratingCache:  ratingCache,
		logger:       logger,
	}
}

// RecomputeRating derives a user's rating from the reactions received on
// their posts and comments and writes it back to the user row:
//
//	rating = likes received - dislikes received
//
// The result may be negative. Calling it redundantly is safe.
func (s *ratingService) RecomputeRating(userID string) (int, error) {
	likes, dislikes, err := s.reactionRepo.CountReceivedByAuthor(userID)
	if err != nil {
		return 0, err
	}

	rating := int(likes - dislikes)

	if err := s.userRepo.UpdateRating(userID, rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("user %s", userID)
		}
		return 0, err
	}

	// Cache refresh is best-effort; the database column is durable.
	if err := s.ratingCache.Set(context.Background(), userID, rating); err != nil {
		s.logger.Warn("failed to refresh rating cache", "user_id", userID, "error", err)
	}

	return rating, nil
}

// GetRating reads a user's rating through the cache
func (s *ratingService) GetRating(userID string) (int, error) {
	ctx := context.Background()

	if rating, ok, err := s.ratingCache.Get(ctx, userID); err == nil && ok {
		return rating, nil
	} else if err != nil {
		s.logger.Warn("failed to read rating cache", "user_id", userID, "error", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("user %s", userID)
		}
		return 0, err
	}

	if err := s.ratingCache.Set(ctx, userID, user.Rating); err != nil {
		s.logger.Warn("failed to refresh rating cache", "user_id", userID, "error", err)
	}

	return user.Rating, nil
}
