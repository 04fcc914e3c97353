package repository

import (
	"forumhub/internal/http-api/models"

	"gorm.io/gorm"
)

// LifecycleRepository performs the multi-table cascades that keep posts,
// comments, reactions and favorites mutually consistent when an entity is
// removed. Every cascade runs inside a single transaction so a reader never
// observes a partially deleted state. Each cascade returns the ids of the
// authors whose content lost reactions, so the caller can refresh their
// cached ratings after commit.
type LifecycleRepository interface {
	DeletePostCascade(postID int64) ([]string, error)
	DeleteUserCascade(userID string) ([]string, error)
}

type lifecycleRepository struct {
	db *gorm.DB
}

func NewLifecycleRepository(db *gorm.DB) LifecycleRepository {
	return &lifecycleRepository{db: db}
}

// DeletePostCascade removes a post and all of its dependent rows,
// children before parents.
func (r *lifecycleRepository) DeletePostCascade(postID int64) ([]string, error) {
	var affected []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		affected, err = deletePostTx(tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// deletePostTx holds the ordered per-post cascade so the user cascade can
// reuse it inside its own transaction. The affected-author queries must run
// before the deletes they describe.
func deletePostTx(tx *gorm.DB, postID int64) ([]string, error) {
	var affected []string
	if err := tx.Raw(`SELECT DISTINCT comments.author_id FROM comments
		JOIN reactions ON reactions.target_kind = ? AND reactions.target_id = comments.id
		WHERE comments.post_id = ?`, models.TargetComment, postID).Scan(&affected).Error; err != nil {
		return nil, err
	}
	var postAuthors []string
	if err := tx.Raw(`SELECT posts.author_id FROM posts
		WHERE posts.id = ? AND EXISTS (SELECT 1 FROM reactions
			WHERE reactions.target_kind = ? AND reactions.target_id = posts.id)`,
		postID, models.TargetPost).Scan(&postAuthors).Error; err != nil {
		return nil, err
	}
	affected = append(affected, postAuthors...)

	// 1. category links
	if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", postID).Error; err != nil {
		return nil, err
	}

	// 2. reactions on the post's comments
	var commentIDs []int64
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs).Error; err != nil {
		return nil, err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("target_kind = ? AND target_id IN ?", models.TargetComment, commentIDs).
			Delete(&models.Reaction{}).Error; err != nil {
			return nil, err
		}
	}

	// 3. the comments themselves
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return nil, err
	}

	// 4. reactions on the post
	if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetPost, postID).
		Delete(&models.Reaction{}).Error; err != nil {
		return nil, err
	}

	// 5. favorites of the post
	if err := tx.Where("post_id = ?", postID).Delete(&models.Favorite{}).Error; err != nil {
		return nil, err
	}

	// 6. the post row
	result := tx.Where("id = ?", postID).Delete(&models.Post{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return affected, nil
}

// DeleteUserCascade removes a user together with every post and comment
// they authored and every reaction and favorite where they are the actor,
// as one transaction.
func (r *lifecycleRepository) DeleteUserCascade(userID string) ([]string, error) {
	var affected []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// authors who lose a reaction this user placed
		if err := tx.Raw(`SELECT DISTINCT posts.author_id FROM posts
			JOIN reactions ON reactions.target_kind = ? AND reactions.target_id = posts.id
			WHERE reactions.author_id = ?
			UNION
			SELECT DISTINCT comments.author_id FROM comments
			JOIN reactions ON reactions.target_kind = ? AND reactions.target_id = comments.id
			WHERE reactions.author_id = ?`,
			models.TargetPost, userID, models.TargetComment, userID).Scan(&affected).Error; err != nil {
			return err
		}

		// authored posts carry their own full cascade
		var postIDs []int64
		if err := tx.Model(&models.Post{}).Where("author_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		for _, postID := range postIDs {
			postAffected, err := deletePostTx(tx, postID)
			if err != nil {
				return err
			}
			affected = append(affected, postAffected...)
		}

		// authored comments on other users' posts, with the reactions on them
		var commentIDs []int64
		if err := tx.Model(&models.Comment{}).Where("author_id = ?", userID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", models.TargetComment, commentIDs).
				Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		// rows where the user is the actor
		if err := tx.Where("author_id = ?", userID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}
