package service

import (
	"io"
	"log/slog"

	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service tests in this package.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRating(userID string, rating int) error {
	args := m.Called(userID, rating)
	return args.Error(0)
}

// MockPostRepository mocks the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(postID int64) (*models.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAuthor(authorID string, page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(authorID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetByCategory(categoryID int64, page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(categoryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetIDsByAuthor(authorID string) ([]int64, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPostRepository) ReplaceCategories(post *models.Post, categories []models.Category) error {
	args := m.Called(post, categories)
	return args.Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(commentID int64) (*models.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPost(postID int64, page, pageSize int) ([]repository.CommentWithCounts, int64, error) {
	args := m.Called(postID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.CommentWithCounts), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetIDsByAuthor(authorID string) ([]int64, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCommentRepository) ListReplies(parentID int64, status string, sortBy repository.ReplySort, descending bool) ([]repository.CommentWithCounts, error) {
	args := m.Called(parentID, status, sortBy, descending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CommentWithCounts), args.Error(1)
}

func (m *MockCommentRepository) DeleteWithReactions(commentID int64) error {
	args := m.Called(commentID)
	return args.Error(0)
}

// MockReactionRepository mocks the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Create(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) GetByAuthorAndTarget(authorID string, target models.ReactionTarget) (*models.Reaction, error) {
	args := m.Called(authorID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) UpdateType(reactionID int64, reactionType models.ReactionType) error {
	args := m.Called(reactionID, reactionType)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(authorID string, target models.ReactionTarget) error {
	args := m.Called(authorID, target)
	return args.Error(0)
}

func (m *MockReactionRepository) CountByTarget(target models.ReactionTarget, reactionType models.ReactionType) (int64, error) {
	args := m.Called(target, reactionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReactionRepository) CountReceivedByAuthor(authorID string) (int64, int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockFavoriteRepository mocks the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(favorite *models.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(userID string, postID int64) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) GetByUser(userID string, page, pageSize int) ([]models.Favorite, int64, error) {
	args := m.Called(userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Favorite), args.Get(1).(int64), args.Error(2)
}

// MockLifecycleRepository mocks the LifecycleRepository interface
type MockLifecycleRepository struct {
	mock.Mock
}

func (m *MockLifecycleRepository) DeletePostCascade(postID int64) ([]string, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLifecycleRepository) DeleteUserCascade(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) RecomputeRating(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRatingService) GetRating(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
