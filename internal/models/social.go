package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CollabPending  = "pending"
	CollabAccepted = "accepted"
	CollabRejected = "rejected"
)

// Like is unique per (idea, user); its existence is the liked state.
type Like struct {
	IdeaID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"idea_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	Idea      Idea      `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CollaborationRequest is unique per (idea, user) regardless of status.
type CollaborationRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdeaID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collab_idea_user" json:"idea_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collab_idea_user" json:"user_id"`
	Idea      Idea      `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification is persisted for the recipient; nothing delivers it.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	IdeaID    *uuid.UUID `gorm:"type:uuid;index" json:"idea_id,omitempty"`
	Type      string     `gorm:"size:50;not null" json:"type"`
	Message   string     `gorm:"type:text" json:"message"`
	Read      bool       `gorm:"default:false" json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}
