package service

import (
	"errors"
	"testing"

	"forumhub/internal/http-api/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newLifecycleService(lifecycleRepo *MockLifecycleRepository, postRepo *MockPostRepository, userRepo *MockUserRepository, rating *MockRatingService) LifecycleService {
	return NewLifecycleService(lifecycleRepo, postRepo, userRepo, rating, nil, testLogger())
}

func TestDeletePost_OwnerTriggersCascade(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	lifecycleRepo.On("DeletePostCascade", int64(1)).Return([]string{"author-a"}, nil)
	rating.On("RecomputeRating", "author-a").Return(0, nil)

	err := svc.DeletePost(1, "author-a")

	assert.NoError(t, err)
	lifecycleRepo.AssertExpectations(t)
	rating.AssertExpectations(t)
}

func TestDeletePost_NonOwnerForbidden(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)

	err := svc.DeletePost(1, "user-b")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	lifecycleRepo.AssertNotCalled(t, "DeletePostCascade", mock.Anything)
}

func TestDeletePost_NotFound(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	postRepo.On("GetByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeletePost(99, "author-a")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// The cascade reports every author whose post or comment lost reactions;
// each gets exactly one recompute even when reported more than once.
func TestDeletePost_RecomputesAffectedAuthors(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	lifecycleRepo.On("DeletePostCascade", int64(1)).
		Return([]string{"commenter-c", "author-a", "commenter-c"}, nil)
	rating.On("RecomputeRating", "commenter-c").Return(2, nil).Once()
	rating.On("RecomputeRating", "author-a").Return(-1, nil).Once()

	err := svc.DeletePost(1, "author-a")

	assert.NoError(t, err)
	rating.AssertExpectations(t)
}

func TestDeletePost_RecomputeFailureDoesNotFailDelete(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	postRepo.On("GetByID", int64(1)).Return(activePost(1, "author-a"), nil)
	lifecycleRepo.On("DeletePostCascade", int64(1)).Return([]string{"author-a"}, nil)
	rating.On("RecomputeRating", "author-a").Return(0, errors.New("redis down"))

	err := svc.DeletePost(1, "author-a")

	assert.NoError(t, err)
}

func TestDeletePostByAdmin_SkipsOwnershipCheck(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	lifecycleRepo.On("DeletePostCascade", int64(1)).Return([]string{"author-a"}, nil)
	rating.On("RecomputeRating", "author-a").Return(0, nil)

	err := svc.DeletePostByAdmin(1)

	assert.NoError(t, err)
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestDeletePostByAdmin_NotFound(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	lifecycleRepo.On("DeletePostCascade", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeletePostByAdmin(99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteUser_RunsCascade(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	userRepo.On("FindByID", "user-b").Return(userWithRating("user-b", 0), nil)
	lifecycleRepo.On("DeleteUserCascade", "user-b").Return([]string{}, nil)

	err := svc.DeleteUser("user-b")

	assert.NoError(t, err)
	lifecycleRepo.AssertExpectations(t)
}

// Deleting a user removes the reactions they placed on other authors'
// content, so those authors' ratings are recomputed. The deleted user's own
// rows need no recompute.
func TestDeleteUser_RecomputesSurvivingAuthors(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	userRepo.On("FindByID", "user-b").Return(userWithRating("user-b", 0), nil)
	lifecycleRepo.On("DeleteUserCascade", "user-b").
		Return([]string{"author-a", "user-b", "commenter-c"}, nil)
	rating.On("RecomputeRating", "author-a").Return(0, nil).Once()
	rating.On("RecomputeRating", "commenter-c").Return(1, nil).Once()

	err := svc.DeleteUser("user-b")

	assert.NoError(t, err)
	rating.AssertExpectations(t)
	rating.AssertNotCalled(t, "RecomputeRating", "user-b")
}

func TestDeleteUser_RecomputeFailureDoesNotFailDelete(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	userRepo.On("FindByID", "user-b").Return(userWithRating("user-b", 0), nil)
	lifecycleRepo.On("DeleteUserCascade", "user-b").Return([]string{"author-a"}, nil)
	rating.On("RecomputeRating", "author-a").Return(0, errors.New("db gone away"))

	err := svc.DeleteUser("user-b")

	assert.NoError(t, err)
}

func TestDeleteUser_NotFound(t *testing.T) {
	lifecycleRepo := new(MockLifecycleRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	rating := new(MockRatingService)
	svc := newLifecycleService(lifecycleRepo, postRepo, userRepo, rating)

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteUser("ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	lifecycleRepo.AssertNotCalled(t, "DeleteUserCascade", mock.Anything)
}
