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

// CommentService manages the comment thread of a post: top-level comments,
// one level of replies, author-only edits and the reaction-aware delete
// cascade.
type CommentService interface {
	CreateComment(postID int64, authorID, content string) (*dto.CommentResponse, error)
	CreateReply(parentID int64, authorID, content string) (*dto.CommentResponse, error)
	UpdateComment(commentID int64, authorID string, update dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	DeleteComment(commentID int64, authorID string) error
	DeleteCommentByAdmin(commentID int64) error
	ListReplies(commentID int64, query dto.ListRepliesDTO) ([]dto.CommentResponse, error)
	GetPostComments(postID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	ratingService RatingService
	logger        *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	ratingService RatingService,
	logger *slog.Logger,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		ratingService: ratingService,
		logger:        logger,
	}
}

// CreateComment creates a new top-level comment on a post
func (s *commentService) CreateComment(postID int64, authorID, content string) (*dto.CommentResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post %d", postID)
		}
		return nil, err
	}
	if !post.IsActive() {
		return nil, apperrors.Unavailable("post %d is inactive", postID)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		Status:   models.StatusActive,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err = s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// CreateReply creates a reply under an existing comment. The parent must
// exist and still be active; the post is inherited from the parent.
func (s *commentService) CreateReply(parentID int64, authorID, content string) (*dto.CommentResponse, error) {
	parent, err := s.commentRepo.GetByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %d", parentID)
		}
		return nil, err
	}
	if !parent.IsActive() {
		return nil, apperrors.Unavailable("comment %d is inactive", parentID)
	}

	reply := &models.Comment{
		PostID:   parent.PostID,
		AuthorID: authorID,
		ParentID: &parent.ID,
		Content:  content,
		Status:   models.StatusActive,
	}
	if err := s.commentRepo.Create(reply); err != nil {
		return nil, err
	}

	reply, err = s.commentRepo.GetByID(reply.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(reply), nil
}

// UpdateComment updates a comment's content and/or status. Only the
// original author may update. Deactivating a comment blocks further
// replies and reactions against it but leaves existing replies untouched.
func (s *commentService) UpdateComment(commentID int64, authorID string, update dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %d", commentID)
		}
		return nil, err
	}

	if comment.AuthorID != authorID {
		return nil, apperrors.Forbidden("only the author may update comment %d", commentID)
	}

	if update.Content != nil {
		comment.Content = *update.Content
	}
	if update.Status != nil {
		comment.Status = *update.Status
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment deletes the author's own comment together with every
// reaction on it
func (s *commentService) DeleteComment(commentID int64, authorID string) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("comment %d", commentID)
		}
		return err
	}

	if comment.AuthorID != authorID {
		return apperrors.Forbidden("only the author may delete comment %d", commentID)
	}

	if err := s.commentRepo.DeleteWithReactions(commentID); err != nil {
		return err
	}

	s.recomputeAuthor(comment.AuthorID)
	return nil
}

// DeleteCommentByAdmin runs the same cascade without an ownership check
func (s *commentService) DeleteCommentByAdmin(commentID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("comment %d", commentID)
		}
		return err
	}

	if err := s.commentRepo.DeleteWithReactions(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("comment %d", commentID)
		}
		return err
	}

	s.recomputeAuthor(comment.AuthorID)
	return nil
}

// recomputeAuthor refreshes the author's rating after their comment and its
// reactions were removed. The delete already committed, so failures are
// logged and never propagated.
func (s *commentService) recomputeAuthor(authorID string) {
	if _, err := s.ratingService.RecomputeRating(authorID); err != nil {
		s.logger.Warn("failed to recompute rating after comment delete",
			"user_id", authorID, "error", err)
	}
}

// ListReplies retrieves a comment's replies with their derived like and
// reply counts
func (s *commentService) ListReplies(commentID int64, query dto.ListRepliesDTO) ([]dto.CommentResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %d", commentID)
		}
		return nil, err
	}

	sortBy := repository.SortByDate
	if query.SortBy == "likes" {
		sortBy = repository.SortByLikes
	}
	descending := query.Order == "DESC" || query.Order == "desc"

	replies, err := s.commentRepo.ListReplies(commentID, query.Status, sortBy, descending)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, *dto.FromCountsToCommentResponse(&replies[i]))
	}
	return responses, nil
}

// GetPostComments retrieves the top-level comments of a post with pagination
func (s *commentService) GetPostComments(postID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post %d", postID)
		}
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByPost(postID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromCountsToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}
