package service

import (
	"errors"

	"forumhub/internal/http-api/apperrors"
	"forumhub/internal/http-api/dto"
	"forumhub/internal/http-api/models"
	"forumhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(authorID string, req dto.CreatePostDTO) (*dto.PostResponse, error)
	GetPost(postID int64) (*dto.PostResponse, error)
	UpdatePost(postID int64, authorID string, req dto.UpdatePostDTO) (*dto.PostResponse, error)
	GetAuthorPosts(authorID string, page, pageSize int) (*dto.PaginatedPostResponse, error)
	GetCategoryPosts(categoryID int64, page, pageSize int) (*dto.PaginatedPostResponse, error)
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	reactionRepo repository.ReactionRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	reactionRepo repository.ReactionRepository,
) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		reactionRepo: reactionRepo,
	}
}

// CreatePost creates a new post with its category links
func (s *postService) CreatePost(authorID string, req dto.CreatePostDTO) (*dto.PostResponse, error) {
	categories, err := s.categoryRepo.GetByIDs(req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(req.CategoryIDs) {
		return nil, apperrors.NotFound("one or more categories do not exist")
	}

	post := &models.Post{
		AuthorID:   authorID,
		Title:      req.Title,
		Content:    req.Content,
		Status:     models.StatusActive,
		Categories: categories,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// Reload with author data
	post, err = s.postRepo.GetByID(post.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}

// GetPost retrieves a post with its derived reaction counts
func (s *postService) GetPost(postID int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post %d", postID)
		}
		return nil, err
	}

	resp := dto.FromModelToPostResponse(post)

	target := models.PostTarget(postID)
	if likes, err := s.reactionRepo.CountByTarget(target, models.ReactionLike); err == nil {
		resp.Likes = likes
	}
	if dislikes, err := s.reactionRepo.CountByTarget(target, models.ReactionDislike); err == nil {
		resp.Dislikes = dislikes
	}

	return resp, nil
}

// UpdatePost updates a post's fields; only the original author may update
func (s *postService) UpdatePost(postID int64, authorID string, req dto.UpdatePostDTO) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post %d", postID)
		}
		return nil, err
	}

	if post.AuthorID != authorID {
		return nil, apperrors.Forbidden("only the author may update post %d", postID)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Status != nil {
		post.Status = *req.Status
	}

	if req.CategoryIDs != nil {
		categories, err := s.categoryRepo.GetByIDs(*req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if len(categories) != len(*req.CategoryIDs) {
			return nil, apperrors.NotFound("one or more categories do not exist")
		}
		if err := s.postRepo.ReplaceCategories(post, categories); err != nil {
			return nil, err
		}
		post.Categories = categories
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	post, err = s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}

// GetAuthorPosts retrieves all posts by an author with pagination
func (s *postService) GetAuthorPosts(authorID string, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	posts, total, err := s.postRepo.GetByAuthor(authorID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.FromModelToPostResponse(&posts[i]))
	}

	return dto.NewPaginatedPostResponse(responses, int(total), page, pageSize), nil
}

// GetCategoryPosts retrieves all posts in a category with pagination
func (s *postService) GetCategoryPosts(categoryID int64, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	posts, total, err := s.postRepo.GetByCategory(categoryID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.FromModelToPostResponse(&posts[i]))
	}

	return dto.NewPaginatedPostResponse(responses, int(total), page, pageSize), nil
}
