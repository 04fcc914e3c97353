package dto

import (
	"time"

	"forumhub/internal/http-api/models"
)

// SetReactionDTO for placing or flipping a like/dislike
type SetReactionDTO struct {
	Type string `json:"type" binding:"required,oneof=like dislike"`
}

// ReactionResponse for returning reaction information
type ReactionResponse struct {
	ID         int64     `json:"id"`
	AuthorID   string    `json:"author_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   int64     `json:"target_id"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModelToReactionResponse converts a Reaction model to ReactionResponse DTO
func FromModelToReactionResponse(reaction *models.Reaction) *ReactionResponse {
	return &ReactionResponse{
		ID:         reaction.ID,
		AuthorID:   reaction.AuthorID,
		TargetKind: string(reaction.TargetKind),
		TargetID:   reaction.TargetID,
		Type:       string(reaction.Type),
		CreatedAt:  reaction.CreatedAt,
		UpdatedAt:  reaction.UpdatedAt,
	}
}

// RatingResponse for returning a user's reputation score
type RatingResponse struct {
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}
