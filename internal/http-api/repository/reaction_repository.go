package repository

import (
	"errors"

	"forumhub/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateReaction is returned when an insert collides with the unique
// (author, target) index, i.e. a concurrent call already created the row.
var ErrDuplicateReaction = errors.New("reaction already exists for this author and target")

type ReactionRepository interface {
	Create(reaction *models.Reaction) error
	GetByAuthorAndTarget(authorID string, target models.ReactionTarget) (*models.Reaction, error)
	UpdateType(reactionID int64, reactionType models.ReactionType) error
	Delete(authorID string, target models.ReactionTarget) error
	CountByTarget(target models.ReactionTarget, reactionType models.ReactionType) (int64, error)
	CountReceivedByAuthor(authorID string) (likes int64, dislikes int64, err error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts a new reaction row. The unique index on
// (author_id, target_kind, target_id) is the arbiter under concurrency:
// the loser of a duplicate insert gets ErrDuplicateReaction.
func (r *reactionRepository) Create(reaction *models.Reaction) error {
	err := r.db.Create(reaction).Error
	if isUniqueViolation(err) {
		return ErrDuplicateReaction
	}
	return err
}

// GetByAuthorAndTarget retrieves the author's reaction on a target
func (r *reactionRepository) GetByAuthorAndTarget(authorID string, target models.ReactionTarget) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("author_id = ? AND target_kind = ? AND target_id = ?",
		authorID, target.Kind, target.ID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// UpdateType flips the type of an existing reaction in place, preserving
// the row's identity.
func (r *reactionRepository) UpdateType(reactionID int64, reactionType models.ReactionType) error {
	result := r.db.Model(&models.Reaction{}).Where("id = ?", reactionID).Update("type", reactionType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the author's reaction on a target
func (r *reactionRepository) Delete(authorID string, target models.ReactionTarget) error {
	result := r.db.Where("author_id = ? AND target_kind = ? AND target_id = ?",
		authorID, target.Kind, target.ID).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByTarget counts reactions of one type on a target
func (r *reactionRepository) CountByTarget(target models.ReactionTarget, reactionType models.ReactionType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).
		Where("target_kind = ? AND target_id = ? AND type = ?", target.Kind, target.ID, reactionType).
		Count(&count).Error
	return count, err
}

// CountReceivedByAuthor tallies the likes and dislikes other users placed
// on the author's posts and comments. This is the source the cached user
// rating derives from.
func (r *reactionRepository) CountReceivedByAuthor(authorID string) (int64, int64, error) {
	var counts struct {
		Likes    int64
		Dislikes int64
	}

	err := r.db.Model(&models.Reaction{}).
		Select(`COALESCE(SUM(CASE WHEN reactions.type = 'like' THEN 1 ELSE 0 END), 0) AS likes,
			COALESCE(SUM(CASE WHEN reactions.type = 'dislike' THEN 1 ELSE 0 END), 0) AS dislikes`).
		Where(`(reactions.target_kind = 'post' AND reactions.target_id IN (?))
			OR (reactions.target_kind = 'comment' AND reactions.target_id IN (?))`,
			r.db.Model(&models.Post{}).Select("id").Where("author_id = ?", authorID),
			r.db.Model(&models.Comment{}).Select("id").Where("author_id = ?", authorID)).
		Scan(&counts).Error
	if err != nil {
		return 0, 0, err
	}

	return counts.Likes, counts.Dislikes, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
