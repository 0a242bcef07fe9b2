package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/security"
	"github.com/google/uuid"
)

// Store interfaces are satisfied by the repository package and by the
// in-memory store in testhelpers. Implementations return
// repository.ErrNotFound and repository.ErrDuplicate.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type IdeaStore interface {
	Create(ctx context.Context, idea *models.Idea) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Idea, error)
	Update(ctx context.Context, idea *models.Idea) error
	SetAnalysis(ctx context.Context, id uuid.UUID, analysis *models.Analysis) error
	List(ctx context.Context, filter repository.IdeaFilter) ([]models.Idea, error)
	CountByPhase(ctx context.Context) (map[string]int64, error)
}

type LikeStore interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, ideaID, userID uuid.UUID) (bool, error)
	CountByIdeas(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedByUser(ctx context.Context, userID uuid.UUID, ideaIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Count(ctx context.Context) (int64, error)
}

type CommentStore interface {
	CountByIdeas(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type CollaborationStore interface {
	Create(ctx context.Context, req *models.CollaborationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CollaborationRequest, error)
	FindByPair(ctx context.Context, ideaID, userID uuid.UUID) (*models.CollaborationRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	AcceptedNames(ctx context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]string, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// PasswordHasher is the one-way credential hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// TokenSigner encodes and decodes access tokens.
type TokenSigner interface {
	Sign(userID uuid.UUID, email, role string) (string, error)
	Parse(token string) (*security.Claims, error)
}

// Stores bundles every store the services need.
type Stores struct {
	Users          UserStore
	Ideas          IdeaStore
	Likes          LikeStore
	Comments       CommentStore
	Collaborations CollaborationStore
	Notifications  NotificationStore
}
