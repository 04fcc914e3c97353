package models

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Status    string    `json:"status" gorm:"not null;default:'active'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author     User       `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:post_categories;constraint:OnDelete:CASCADE;"`
}

func (Post) TableName() string {
	return "posts"
}

// IsActive reports whether the post accepts comments, reactions and favorites.
func (p *Post) IsActive() bool {
	return p.Status == StatusActive
}
