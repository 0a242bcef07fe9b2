package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
)

type AdminService struct {
	users   UserStore
	ideas   IdeaStore
	likes   LikeStore
	collabs CollaborationStore
}

func NewAdminService(stores Stores) *AdminService {
	return &AdminService{
		users:   stores.Users,
		ideas:   stores.Ideas,
		likes:   stores.Likes,
		collabs: stores.Collaborations,
	}
}

// Analytics is computed fresh on every call. Every role and phase is present
// in the result, zero-filled.
func (s *AdminService) Analytics(ctx context.Context, caller *Identity) (*dto.AnalyticsResponse, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	byPhase, err := s.ideas.CountByPhase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ideas: %w", err)
	}
	accepted, err := s.collabs.CountByStatus(ctx, models.CollabAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to count collaborations: %w", err)
	}
	likes, err := s.likes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	resp := &dto.AnalyticsResponse{
		UsersByRole:            make(map[string]int64, len(models.Roles)),
		IdeasByPhase:           make([]dto.PhaseCount, 0, len(models.Phases)),
		AcceptedCollaborations: accepted,
		TotalLikes:             likes,
	}
	for _, role := range models.Roles {
		resp.UsersByRole[role] = byRole[role]
		resp.TotalUsers += byRole[role]
	}
	for i, phase := range models.Phases {
		resp.IdeasByPhase = append(resp.IdeasByPhase, dto.PhaseCount{Phase: phase, PhaseIndex: i, Count: byPhase[phase]})
		resp.TotalIdeas += byPhase[phase]
	}
	return resp, nil
}
