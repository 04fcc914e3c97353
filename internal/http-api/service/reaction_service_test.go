package service

import (
	"errors"
	"testing"

	"forumhub/internal/http-api/apperrors"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newReactionService(reactionRepo *MockReactionRepository, postRepo *MockPostRepository, commentRepo *MockCommentRepository, rating *MockRatingService) ReactionService {
	return NewReactionService(reactionRepo, postRepo, commentRepo, rating, testLogger())
}

func activePost(id int64, authorID string) *models.Post {
	return &models.Post{ID: id, AuthorID: authorID, Status: models.StatusActive}
}

func TestSetReaction_CreatesNewReaction(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(nil, gorm.ErrRecordNotFound)
	reactionRepo.On("Create", mock.AnythingOfType("*models.Reaction")).Return(nil)
	rating.On("RecomputeRating", "author-a").Return(1, nil)

	resp, err := svc.SetReaction("user-b", target, models.ReactionLike)

	assert.NoError(t, err)
	assert.Equal(t, "like", resp.Type)
	assert.Equal(t, "user-b", resp.AuthorID)
	reactionRepo.AssertExpectations(t)
	rating.AssertExpectations(t)
}

func TestSetReaction_SameTypeIsConflict(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	existing := &models.Reaction{ID: 7, AuthorID: "user-b", TargetKind: models.TargetPost, TargetID: 1, Type: models.ReactionLike}
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(existing, nil)

	_, err := svc.SetReaction("user-b", target, models.ReactionLike)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything)
	reactionRepo.AssertNotCalled(t, "UpdateType", mock.Anything, mock.Anything)
	rating.AssertNotCalled(t, "RecomputeRating", mock.Anything)
}

func TestSetReaction_FlipUpdatesRowInPlace(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	existing := &models.Reaction{ID: 7, AuthorID: "user-b", TargetKind: models.TargetPost, TargetID: 1, Type: models.ReactionLike}
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(existing, nil)
	reactionRepo.On("UpdateType", int64(7), models.ReactionDislike).Return(nil)
	rating.On("RecomputeRating", "author-a").Return(-1, nil)

	resp, err := svc.SetReaction("user-b", target, models.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "dislike", resp.Type)
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything)
	reactionRepo.AssertExpectations(t)
	rating.AssertExpectations(t)
}

// A clear racing the flip removes the row between lookup and update; the
// flip must answer not-found rather than a bare storage error.
func TestSetReaction_FlipOfClearedRowIsNotFound(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	existing := &models.Reaction{ID: 7, AuthorID: "user-b", TargetKind: models.TargetPost, TargetID: 1, Type: models.ReactionLike}
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(existing, nil)
	reactionRepo.On("UpdateType", int64(7), models.ReactionDislike).Return(gorm.ErrRecordNotFound)

	_, err := svc.SetReaction("user-b", target, models.ReactionDislike)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	rating.AssertNotCalled(t, "RecomputeRating", mock.Anything)
}

func TestSetReaction_SelfReactionForbidden(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)

	_, err := svc.SetReaction("author-a", models.PostTarget(1), models.ReactionLike)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSetReaction_InactiveTargetUnavailable(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	commentRepo.On("GetByID", int64(3)).Return(&models.Comment{
		ID: 3, AuthorID: "author-a", Status: models.StatusInactive,
	}, nil)

	_, err := svc.SetReaction("user-b", models.CommentTarget(3), models.ReactionLike)

	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSetReaction_TargetNotFound(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	postRepo.On("GetByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SetReaction("user-b", models.PostTarget(99), models.ReactionLike)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetReaction_ConcurrentInsertLosesAsConflict(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(nil, gorm.ErrRecordNotFound)
	reactionRepo.On("Create", mock.AnythingOfType("*models.Reaction")).Return(repository.ErrDuplicateReaction)

	_, err := svc.SetReaction("user-b", target, models.ReactionLike)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	rating.AssertNotCalled(t, "RecomputeRating", mock.Anything)
}

func TestSetReaction_RecomputeFailureDoesNotFailRequest(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(nil, gorm.ErrRecordNotFound)
	reactionRepo.On("Create", mock.AnythingOfType("*models.Reaction")).Return(nil)
	rating.On("RecomputeRating", "author-a").Return(0, errors.New("cache down"))

	resp, err := svc.SetReaction("user-b", target, models.ReactionLike)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	rating.AssertExpectations(t)
}

func TestClearReaction_RemovesAndRecomputes(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("Delete", "user-b", target).Return(nil)
	rating.On("RecomputeRating", "author-a").Return(0, nil)

	err := svc.ClearReaction("user-b", target)

	assert.NoError(t, err)
	reactionRepo.AssertExpectations(t)
	rating.AssertExpectations(t)
}

func TestClearReaction_AbsentRowNotFound(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.PostTarget(1)
	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	reactionRepo.On("Delete", "user-b", target).Return(gorm.ErrRecordNotFound)

	err := svc.ClearReaction("user-b", target)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	rating.AssertNotCalled(t, "RecomputeRating", mock.Anything)
}

func TestSetReaction_CommentTargetUsesCommentAuthor(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	rating := new(MockRatingService)
	svc := newReactionService(reactionRepo, postRepo, commentRepo, rating)

	target := models.CommentTarget(5)
	commentRepo.On("GetByID", int64(5)).Return(&models.Comment{
		ID: 5, AuthorID: "author-c", Status: models.StatusActive,
	}, nil)
	reactionRepo.On("GetByAuthorAndTarget", "user-b", target).Return(nil, gorm.ErrRecordNotFound)
	reactionRepo.On("Create", mock.AnythingOfType("*models.Reaction")).Return(nil)
	rating.On("RecomputeRating", "author-c").Return(1, nil)

	resp, err := svc.SetReaction("user-b", target, models.ReactionDislike)

	assert.NoError(t, err)
	assert.Equal(t, "comment", resp.TargetKind)
	assert.Equal(t, int64(5), resp.TargetID)
	rating.AssertExpectations(t)
}
