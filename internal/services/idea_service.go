package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/repository"
	"github.com/google/uuid"
)

// PublicFeedLimit caps the unauthenticated feed.
const PublicFeedLimit = 20

type IdeaService struct {
	ideas    IdeaStore
	likes    LikeStore
	comments CommentStore
	collabs  CollaborationStore
	enricher *Enricher
	analyzer *ai.Analyzer
}

func NewIdeaService(stores Stores, enricher *Enricher, analyzer *ai.Analyzer) *IdeaService {
	return &IdeaService{
		ideas:    stores.Ideas,
		likes:    stores.Likes,
		comments: stores.Comments,
		collabs:  stores.Collaborations,
		enricher: enricher,
		analyzer: analyzer,
	}
}

// Create persists the idea before enrichment runs, so an analysis failure
// can never lose it.
func (s *IdeaService) Create(ctx context.Context, author *Identity, req *dto.CreateIdeaRequest) (*dto.IdeaView, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	phase := models.Phases[0]
	if req.Phase != nil && strings.TrimSpace(*req.Phase) != "" {
		phase = strings.TrimSpace(*req.Phase)
	}
	index := models.PhaseIndex(phase)
	if index < 0 {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrValidation, phase)
	}

	idea := models.Idea{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		AuthorID:    author.UserID,
		Author:      models.User{ID: author.UserID, Name: author.Name},
		Phase:       phase,
		PhaseIndex:  index,
		Tags:        normalizeTags(req.Tags),
		IsPublic:    true,
	}
	if err := s.ideas.Create(ctx, &idea); err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	s.enricher.Enrich(ctx, &idea)

	view := projectIdea(&idea, feedAggregates{})
	return &view, nil
}

// Update applies a partial patch. Only the author may edit; existence is
// checked before ownership.
func (s *IdeaService) Update(ctx context.Context, caller *Identity, ideaID uuid.UUID, req *dto.UpdateIdeaRequest) (*dto.IdeaView, error) {
	idea, err := s.find(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID != caller.UserID {
		return nil, fmt.Errorf("%w: only the author can edit this idea", ErrForbidden)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", ErrValidation)
		}
		idea.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description cannot be blank", ErrValidation)
		}
		idea.Description = description
	}
	if req.Tags != nil {
		idea.Tags = normalizeTags(*req.Tags)
	}
	if err := applyPhase(idea, req.Phase, req.PhaseIndex); err != nil {
		return nil, err
	}

	if err := s.ideas.Update(ctx, idea); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}

	return s.view(ctx, idea, caller)
}

func applyPhase(idea *models.Idea, phase *string, index *int) error {
	switch {
	case phase == nil && index == nil:
		return nil
	case phase != nil && index != nil:
		if models.PhaseIndex(*phase) != *index || *index < 0 {
			return fmt.Errorf("%w: phase and phase_index disagree", ErrValidation)
		}
		idea.Phase, idea.PhaseIndex = *phase, *index
	case phase != nil:
		i := models.PhaseIndex(*phase)
		if i < 0 {
			return fmt.Errorf("%w: unknown phase %q", ErrValidation, *phase)
		}
		idea.Phase, idea.PhaseIndex = *phase, i
	default:
		name, ok := models.PhaseAt(*index)
		if !ok {
			return fmt.Errorf("%w: phase_index must be between 0 and %d", ErrValidation, len(models.Phases)-1)
		}
		idea.Phase, idea.PhaseIndex = name, *index
	}
	return nil
}

func (s *IdeaService) Get(ctx context.Context, ideaID uuid.UUID, viewer *Identity) (*dto.IdeaView, error) {
	idea, err := s.find(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, idea, viewer)
}

// ListFeed returns every idea newest-first with the viewer's like state.
func (s *IdeaService) ListFeed(ctx context.Context, viewer *Identity) ([]dto.IdeaView, error) {
	return s.list(ctx, repository.IdeaFilter{}, viewer)
}

// ListPublicFeed never reports a like state.
func (s *IdeaService) ListPublicFeed(ctx context.Context) ([]dto.IdeaView, error) {
	return s.list(ctx, repository.IdeaFilter{PublicOnly: true, Limit: PublicFeedLimit}, nil)
}

func (s *IdeaService) list(ctx context.Context, filter repository.IdeaFilter, viewer *Identity) ([]dto.IdeaView, error) {
	ideas, err := s.ideas.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	if len(ideas) == 0 {
		return []dto.IdeaView{}, nil
	}

	agg, err := s.loadAggregates(ctx, ideas, viewer)
	if err != nil {
		return nil, err
	}
	return projectFeed(ideas, agg), nil
}

// Reanalyze re-runs enrichment for the author's idea.
func (s *IdeaService) Reanalyze(ctx context.Context, caller *Identity, ideaID uuid.UUID) (*dto.IdeaView, error) {
	idea, err := s.find(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID != caller.UserID && !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: only the author can re-analyze this idea", ErrForbidden)
	}

	s.enricher.Enrich(ctx, idea)
	return s.view(ctx, idea, caller)
}

// Ask answers a question about an idea. The analyzer never fails; an
// unavailable model yields a fixed apology.
func (s *IdeaService) Ask(ctx context.Context, ideaID uuid.UUID, question string) (*dto.AssistantResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	idea, err := s.find(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	answer := s.analyzer.Answer(ctx, question, idea.Title, idea.Description, idea.Phase)
	return &dto.AssistantResponse{Answer: answer}, nil
}

func (s *IdeaService) find(ctx context.Context, ideaID uuid.UUID) (*models.Idea, error) {
	idea, err := s.ideas.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: idea not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load idea: %w", err)
	}
	return idea, nil
}

func (s *IdeaService) view(ctx context.Context, idea *models.Idea, viewer *Identity) (*dto.IdeaView, error) {
	agg, err := s.loadAggregates(ctx, []models.Idea{*idea}, viewer)
	if err != nil {
		return nil, err
	}
	v := projectIdea(idea, agg)
	return &v, nil
}

// normalizeTags trims every tag and drops empties, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
