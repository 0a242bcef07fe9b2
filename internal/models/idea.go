package models

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a business idea submitted by its author.
type Idea struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Phase       string    `gorm:"size:50;not null" json:"phase"`
	PhaseIndex  int       `gorm:"not null;default:0;index" json:"phase_index"`
	Tags        []string  `gorm:"type:jsonb;serializer:json" json:"tags"`
	AIAnalysis  *Analysis `gorm:"type:jsonb;serializer:json" json:"ai_analysis"`
	IsPublic    bool      `gorm:"not null;default:true;index" json:"is_public"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Analysis is the AI assessment attached to an idea. It is stored whole or
// not at all.
type Analysis struct {
	SimilarSolutions  []SimilarSolution `json:"similar_solutions"`
	MarketOpportunity MarketOpportunity `json:"market_opportunity"`
	Recommendations   []string          `json:"recommendations"`
	Risks             []string          `json:"risks"`
}

type SimilarSolution struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MarketOpportunity struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Comment is only counted by the feed.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdeaID    uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`
	Idea      Idea      `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
