package service

import (
	"errors"
	"log/slog"

	"forumhub/internal/http-api/apperrors"
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// ReactionService is the like/dislike state machine for a single
// (author, target) pair. For every pair at most one reaction row exists:
// a fresh reaction inserts, an identical repeat is a conflict, and an
// opposite reaction flips the row's type in place.
type ReactionService interface {
	SetReaction(authorID string, target models.ReactionTarget, reactionType models.ReactionType) (*dto.ReactionResponse, error)
	ClearReaction(authorID string, target models.ReactionTarget) error
}

type reactionService struct {
	reactionRepo  repository.ReactionRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	ratingService RatingService
	logger        *slog.Logger
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	ratingService RatingService,
	logger *slog.Logger,
) ReactionService {
	return &reactionService{
		reactionRepo:  reactionRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		ratingService: ratingService,
		logger:        logger,
	}
}

// SetReaction places, flips or rejects a like/dislike on a post or comment
func (s *reactionService) SetReaction(authorID string, target models.ReactionTarget, reactionType models.ReactionType) (*dto.ReactionResponse, error) {
	targetAuthorID, active, err := s.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.Unavailable("%s is inactive", target)
	}
	if targetAuthorID == authorID {
		return nil, apperrors.Forbidden("cannot react to your own %s", target.Kind)
	}

	existing, err := s.reactionRepo.GetByAuthorAndTarget(authorID, target)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := &models.Reaction{
			AuthorID:   authorID,
			TargetKind: target.Kind,
			TargetID:   target.ID,
			Type:       reactionType,
		}
		if err := s.reactionRepo.Create(reaction); err != nil {
			if errors.Is(err, repository.ErrDuplicateReaction) {
				// A concurrent call won the insert race; the unique index
				// guarantees the pair still holds exactly one row.
				return nil, apperrors.Conflict("reaction already exists on %s", target)
			}
			return nil, err
		}
		s.recomputeFor(targetAuthorID)
		return dto.FromModelToReactionResponse(reaction), nil

	case err != nil:
		return nil, err

	case existing.Type == reactionType:
		return nil, apperrors.Conflict("already %sd %s", reactionType, target)

	default:
		if err := s.reactionRepo.UpdateType(existing.ID, reactionType); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The row was cleared between lookup and flip
				return nil, apperrors.NotFound("no reaction on %s", target)
			}
			return nil, err
		}
		existing.Type = reactionType
		s.recomputeFor(targetAuthorID)
		return dto.FromModelToReactionResponse(existing), nil
	}
}

// ClearReaction removes the author's reaction from a post or comment
func (s *reactionService) ClearReaction(authorID string, target models.ReactionTarget) error {
	targetAuthorID, _, err := s.resolveTarget(target)
	if err != nil {
		return err
	}

	if err := s.reactionRepo.Delete(authorID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("no reaction on %s", target)
		}
		return err
	}

	s.recomputeFor(targetAuthorID)
	return nil
}

// resolveTarget looks up the post or comment a reaction points at and
// returns its author and whether it still accepts reactions.
func (s *reactionService) resolveTarget(target models.ReactionTarget) (string, bool, error) {
	switch target.Kind {
	case models.TargetPost:
		post, err := s.postRepo.GetByID(target.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", false, apperrors.NotFound("%s", target)
			}
			return "", false, err
		}
		return post.AuthorID, post.IsActive(), nil

	case models.TargetComment:
		comment, err := s.commentRepo.GetByID(target.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", false, apperrors.NotFound("%s", target)
			}
			return "", false, err
		}
		return comment.AuthorID, comment.IsActive(), nil

	default:
		return "", false, apperrors.NotFound("unknown target kind %q", target.Kind)
	}
}

// recomputeFor refreshes the target author's cached rating. The reaction
// change already committed, so a failed recompute is logged and never
// propagated; the next recompute converges from the durable rows.
func (s *reactionService) recomputeFor(targetAuthorID string) {
	if _, err := s.ratingService.RecomputeRating(targetAuthorID); err != nil {
		s.logger.Error("failed to recompute rating after reaction change",
			"user_id", targetAuthorID, "error", err)
	}
}
