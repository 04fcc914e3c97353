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

// LifecycleService orchestrates destructive operations. Each delete runs
// the full dependent-row cascade inside one transaction so no orphaned
// reactions, comments or favorites survive a partial failure. After commit
// the ratings of authors whose content lost reactions are recomputed.
type LifecycleService interface {
	DeletePost(postID int64, requesterID string) error
	DeletePostByAdmin(postID int64) error
	DeleteUser(userID string) error
}

type lifecycleService struct {
	lifecycleRepo repository.LifecycleRepository
	postRepo      repository.PostRepository
	userRepo      repository.UserRepository
	ratingService RatingService
	ratingCache   *cache.RatingCache
	logger        *slog.Logger
}

func NewLifecycleService(
	lifecycleRepo repository.LifecycleRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	ratingService RatingService,
	ratingCache *cache.RatingCache,
	logger *slog.Logger,
) LifecycleService {
	return &lifecycleService{
		lifecycleRepo: lifecycleRepo,
		postRepo:      postRepo,
		userRepo:      userRepo,
		ratingService: ratingService,
		ratingCache:   ratingCache,
		logger:        logger,
	}
}

// DeletePost removes the requester's own post and everything hanging off it
func (s *lifecycleService) DeletePost(postID int64, requesterID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("post %d", postID)
		}
		return err
	}

	if post.AuthorID != requesterID {
		return apperrors.Forbidden("only the author may delete post %d", postID)
	}

	affected, err := s.lifecycleRepo.DeletePostCascade(postID)
	if err != nil {
		return err
	}

	s.recomputeAffected(affected, "")
	return nil
}

// DeletePostByAdmin runs the same cascade without an ownership check
func (s *lifecycleService) DeletePostByAdmin(postID int64) error {
	affected, err := s.lifecycleRepo.DeletePostCascade(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("post %d", postID)
		}
		return err
	}

	s.recomputeAffected(affected, "")
	return nil
}

// DeleteUser removes a user account with every post and comment they
// authored and every reaction and favorite they placed, as one transaction.
func (s *lifecycleService) DeleteUser(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %s", userID)
		}
		return err
	}

	affected, err := s.lifecycleRepo.DeleteUserCascade(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %s", userID)
		}
		return err
	}

	// Surviving authors whose content lost this user's reactions get a fresh
	// rating; the deleted user's own entries just get dropped.
	s.recomputeAffected(affected, userID)
	if err := s.ratingCache.Invalidate(context.Background(), userID); err != nil {
		s.logger.Warn("failed to invalidate rating cache", "user_id", userID, "error", err)
	}

	return nil
}

// recomputeAffected refreshes each distinct author's rating after a cascade
// removed reactions from their content. The cascade already committed, so
// failures are logged and never propagated.
func (s *lifecycleService) recomputeAffected(authorIDs []string, skip string) {
	seen := make(map[string]struct{}, len(authorIDs))
	for _, authorID := range authorIDs {
		if authorID == skip {
			continue
		}
		if _, ok := seen[authorID]; ok {
			continue
		}
		seen[authorID] = struct{}{}

		if _, err := s.ratingService.RecomputeRating(authorID); err != nil {
			s.logger.Warn("failed to recompute rating after delete cascade",
				"user_id", authorID, "error", err)
		}
	}
}
