package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    int64     `json:"post_id" gorm:"not null;index"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"` // set when the comment is a reply
	Content   string    `json:"content" gorm:"not null;type:text"`
	Status    string    `json:"status" gorm:"not null;default:'active'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Post   Post    `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Parent *Comment `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// IsActive reports whether the comment accepts replies and reactions.
func (c *Comment) IsActive() bool {
	return c.Status == StatusActive
}
