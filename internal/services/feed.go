package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/google/uuid"
)

// feedAggregates holds the per-idea counts read at request time.
type feedAggregates struct {
	likes         map[uuid.UUID]int64
	comments      map[uuid.UUID]int64
	collaborators map[uuid.UUID][]string
	liked         map[uuid.UUID]bool
}

// loadAggregates reads like counts, comment counts and accepted
// collaborators for ideas, plus the viewer's likes when viewer is set.
func (s *IdeaService) loadAggregates(ctx context.Context, ideas []models.Idea, viewer *Identity) (feedAggregates, error) {
	ids := make([]uuid.UUID, len(ideas))
	for i := range ideas {
		ids[i] = ideas[i].ID
	}

	var agg feedAggregates
	var err error
	if agg.likes, err = s.likes.CountByIdeas(ctx, ids); err != nil {
		return agg, fmt.Errorf("failed to count likes: %w", err)
	}
	if agg.comments, err = s.comments.CountByIdeas(ctx, ids); err != nil {
		return agg, fmt.Errorf("failed to count comments: %w", err)
	}
	if agg.collaborators, err = s.collabs.AcceptedNames(ctx, ids); err != nil {
		return agg, fmt.Errorf("failed to load collaborators: %w", err)
	}
	if viewer != nil {
		if agg.liked, err = s.likes.LikedByUser(ctx, viewer.UserID, ids); err != nil {
			return agg, fmt.Errorf("failed to load viewer likes: %w", err)
		}
	}
	return agg, nil
}

// projectFeed is a pure function of the rows it is given.
func projectFeed(ideas []models.Idea, agg feedAggregates) []dto.IdeaView {
	views := make([]dto.IdeaView, 0, len(ideas))
	for i := range ideas {
		views = append(views, projectIdea(&ideas[i], agg))
	}
	return views
}

func projectIdea(idea *models.Idea, agg feedAggregates) dto.IdeaView {
	tags := idea.Tags
	if tags == nil {
		tags = []string{}
	}
	collaborators := agg.collaborators[idea.ID]
	if collaborators == nil {
		collaborators = []string{}
	}

	return dto.IdeaView{
		ID:            idea.ID,
		Title:         idea.Title,
		Description:   idea.Description,
		AuthorID:      idea.AuthorID,
		AuthorName:    idea.Author.Name,
		Phase:         idea.Phase,
		PhaseIndex:    idea.PhaseIndex,
		Tags:          tags,
		AIAnalysis:    idea.AIAnalysis,
		IsPublic:      idea.IsPublic,
		Likes:         agg.likes[idea.ID],
		Comments:      agg.comments[idea.ID],
		Collaborators: collaborators,
		IsLiked:       agg.liked[idea.ID],
		CreatedAt:     idea.CreatedAt,
		UpdatedAt:     idea.UpdatedAt,
	}
}
