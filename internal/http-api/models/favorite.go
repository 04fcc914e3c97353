package models

import "time"

// Favorite bookmarks a post for a user. The combination of UserID and
// PostID must be unique.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_post"`
	PostID    int64     `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post Post `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (Favorite) TableName() string {
	return "favorites"
}
