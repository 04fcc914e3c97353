package models

import (
	"fmt"
	"time"
)

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// ReactionTarget identifies the single post or comment a reaction points at.
// Carrying kind and id together keeps the target mutually exclusive instead
// of two nullable foreign keys.
type ReactionTarget struct {
	Kind TargetKind
	ID   int64
}

func PostTarget(id int64) ReactionTarget {
	return ReactionTarget{Kind: TargetPost, ID: id}
}

func CommentTarget(id int64) ReactionTarget {
	return ReactionTarget{Kind: TargetComment, ID: id}
}

func (t ReactionTarget) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Reaction is a like or dislike a user placed on a post or comment.
// The composite unique index serializes concurrent toggles on the same
// (author, target) pair at the storage layer.
type Reaction struct {
	ID         int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID   string       `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_author_target"`
	TargetKind TargetKind   `json:"target_kind" gorm:"size:20;not null;uniqueIndex:idx_author_target;index:idx_target"`
	TargetID   int64        `json:"target_id" gorm:"not null;uniqueIndex:idx_author_target;index:idx_target"`
	Type       ReactionType `json:"type" gorm:"size:20;not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// Target returns the tagged target the reaction points at.
func (r *Reaction) Target() ReactionTarget {
	return ReactionTarget{Kind: r.TargetKind, ID: r.TargetID}
}
