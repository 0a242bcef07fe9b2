package services

import (
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/google/uuid"
)

// Identity is a caller resolved from a verified token and the current users row.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   string
}

func identityFromUser(u *models.User) *Identity {
	return &Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}
