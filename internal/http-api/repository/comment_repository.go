package repository

import (
	"fmt"

	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

// CommentWithCounts is a comment row joined with its read-time engagement
// counts. The counts are derived from the reaction and comment tables on
// every query so they cannot drift from the underlying rows.
type CommentWithCounts struct {
	models.Comment
	LikesCount   int64 `json:"likes_count"`
	RepliesCount int64 `json:"replies_count"`
}

type ReplySort string

const (
	SortByLikes ReplySort = "likes"
	SortByDate  ReplySort = "date"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	GetByID(commentID int64) (*models.Comment, error)
	GetByPost(postID int64, page, pageSize int) ([]CommentWithCounts, int64, error)
	GetIDsByAuthor(authorID string) ([]int64, error)
	ListReplies(parentID int64, status string, sortBy ReplySort, descending bool) ([]CommentWithCounts, error)
	DeleteWithReactions(commentID int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

const (
	likesCountExpr = `(SELECT COUNT(*) FROM reactions
		WHERE reactions.target_kind = 'comment'
		  AND reactions.target_id = comments.id
		  AND reactions.type = 'like') AS likes_count`
	repliesCountExpr = `(SELECT COUNT(*) FROM comments AS children
		WHERE children.parent_id = comments.id) AS replies_count`
)

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		Preload("Author").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPost retrieves the top-level comments of a post with pagination
func (r *commentRepository) GetByPost(postID int64, page, pageSize int) ([]CommentWithCounts, int64, error) {
	var comments []CommentWithCounts
	var total int64

	if err := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Model(&models.Comment{}).
		Select("comments.*, " + likesCountExpr + ", " + repliesCountExpr).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// GetIDsByAuthor retrieves the ids of every comment authored by a user
func (r *commentRepository) GetIDsByAuthor(authorID string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.Comment{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

// ListReplies retrieves the replies of a comment with their counts,
// optionally filtered by status. Ties sort by insertion order so the
// result is stable.
func (r *commentRepository) ListReplies(parentID int64, status string, sortBy ReplySort, descending bool) ([]CommentWithCounts, error) {
	var replies []CommentWithCounts

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	var orderExpr string
	switch sortBy {
	case SortByLikes:
		orderExpr = fmt.Sprintf("likes_count %s, id ASC", direction)
	default:
		orderExpr = fmt.Sprintf("created_at %s, id ASC", direction)
	}

	query := r.db.Model(&models.Comment{}).
		Select("comments.*, "+likesCountExpr+", "+repliesCountExpr).
		Where("parent_id = ?", parentID).
		Preload("Author")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order(orderExpr).Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// DeleteWithReactions removes a comment and every reaction pointing at it
// inside one transaction.
func (r *commentRepository) DeleteWithReactions(commentID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetComment, commentID).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", commentID).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
