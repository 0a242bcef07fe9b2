package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/google/uuid"
)

type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Phase       *string  `json:"phase,omitempty"`
}

// UpdateIdeaRequest is a partial update: nil fields are left unchanged.
type UpdateIdeaRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Phase       *string   `json:"phase,omitempty"`
	PhaseIndex  *int      `json:"phase_index,omitempty"`
}

// IdeaView is the feed projection of an idea.
type IdeaView struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	AuthorID      uuid.UUID        `json:"author_id"`
	AuthorName    string           `json:"author_name"`
	Phase         string           `json:"phase"`
	PhaseIndex    int              `json:"phase_index"`
	Tags          []string         `json:"tags"`
	AIAnalysis    *models.Analysis `json:"ai_analysis"`
	IsPublic      bool             `json:"is_public"`
	Likes         int64            `json:"likes"`
	Comments      int64            `json:"comments"`
	Collaborators []string         `json:"collaborators"`
	IsLiked       bool             `json:"is_liked"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type LikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type CollaborateRequest struct {
	Message string `json:"message"`
}

type CollaborationStatusRequest struct {
	Status string `json:"status"`
}

type AssistantRequest struct {
	Question string `json:"question"`
}

type AssistantResponse struct {
	Answer string `json:"answer"`
}
