package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	NotifyCollaborationRequest  = "collaboration_request"
	NotifyCollaborationAccepted = "collaboration_accepted"
	NotifyCollaborationRejected = "collaboration_rejected"
)

type SocialService struct {
	ideas         IdeaStore
	likes         LikeStore
	collabs       CollaborationStore
	notifications NotificationStore
}

func NewSocialService(stores Stores) *SocialService {
	return &SocialService{
		ideas:         stores.Ideas,
		likes:         stores.Likes,
		collabs:       stores.Collaborations,
		notifications: stores.Notifications,
	}
}

// ToggleLike flips the caller's like. A lost insert race means another
// request already liked it for the same user, which is the liked state.
func (s *SocialService) ToggleLike(ctx context.Context, user *Identity, ideaID uuid.UUID) (*dto.LikeResponse, error) {
	if _, err := s.findIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	removed, err := s.likes.Delete(ctx, ideaID, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}

	liked := false
	if !removed {
		err := s.likes.Create(ctx, &models.Like{IdeaID: ideaID, UserID: user.UserID})
		if err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	}

	counts, err := s.likes.CountByIdeas(ctx, []uuid.UUID{ideaID})
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &dto.LikeResponse{Liked: liked, Likes: counts[ideaID]}, nil
}

// RequestCollaboration files a pending request. A pair may only ever have
// one request, whatever its status.
func (s *SocialService) RequestCollaboration(ctx context.Context, requester *Identity, ideaID uuid.UUID, message string) (*models.CollaborationRequest, error) {
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID == requester.UserID {
		return nil, ErrSelfCollaboration
	}

	_, err = s.collabs.FindByPair(ctx, ideaID, requester.UserID)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up collaboration request: %w", err)
	}

	req := models.CollaborationRequest{
		ID:      uuid.New(),
		IdeaID:  ideaID,
		UserID:  requester.UserID,
		Message: strings.TrimSpace(message),
		Status:  models.CollabPending,
	}
	if err := s.collabs.Create(ctx, &req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create collaboration request: %w", err)
	}

	s.notify(ctx, idea.AuthorID, idea.ID, NotifyCollaborationRequest,
		fmt.Sprintf("%s wants to collaborate on %q", requester.Name, idea.Title))
	return &req, nil
}

// TransitionCollaboration settles a pending request. Only the idea author or
// an admin may do it, and only once.
func (s *SocialService) TransitionCollaboration(ctx context.Context, actor *Identity, requestID uuid.UUID, status string) (*models.CollaborationRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != models.CollabAccepted && status != models.CollabRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrValidation)
	}

	req, err := s.collabs.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: collaboration request not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load collaboration request: %w", err)
	}
	if req.Idea.AuthorID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the idea author can answer this request", ErrForbidden)
	}
	if req.Status != models.CollabPending {
		return nil, ErrInvalidTransition
	}

	moved, err := s.collabs.UpdateStatus(ctx, req.ID, models.CollabPending, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update collaboration request: %w", err)
	}
	if !moved {
		return nil, ErrInvalidTransition
	}
	req.Status = status

	kind := NotifyCollaborationRejected
	if status == models.CollabAccepted {
		kind = NotifyCollaborationAccepted
	}
	s.notify(ctx, req.UserID, req.IdeaID, kind,
		fmt.Sprintf("Your request to collaborate on %q was %s", req.Idea.Title, status))
	return req, nil
}

// notify records a notification row. Delivery is out of scope, so a failed
// write is logged and the caller's action still succeeds.
func (s *SocialService) notify(ctx context.Context, recipient, ideaID uuid.UUID, kind, message string) {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  recipient,
		IdeaID:  &ideaID,
		Type:    kind,
		Message: message,
	}
	if err := s.notifications.Create(ctx, &n); err != nil {
		slog.Warn("failed to write notification", "type", kind, "user_id", recipient.String(), "error", err)
	}
}

func (s *SocialService) findIdea(ctx context.Context, ideaID uuid.UUID) (*models.Idea, error) {
	idea, err := s.ideas.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: idea not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load idea: %w", err)
	}
	return idea, nil
}
