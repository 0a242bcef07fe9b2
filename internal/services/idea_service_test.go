package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestCreateIdea_Defaults(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")

	view, err := e.ideas.Create(context.Background(), ada, &dto.CreateIdeaRequest{
		Title:       "  Internal tool marketplace ",
		Description: " Share tools across teams ",
		Tags:        []string{" ai ", "", "tools", "   "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Internal tool marketplace", view.Title)
	assert.Equal(t, "Share tools across teams", view.Description)
	assert.Equal(t, []string{"ai", "tools"}, view.Tags)
	assert.Equal(t, models.Phases[0], view.Phase)
	assert.Equal(t, 0, view.PhaseIndex)
	assert.True(t, view.IsPublic)
	assert.Equal(t, "ada", view.AuthorName)
	assert.Equal(t, ada.UserID, view.AuthorID)
	assert.Zero(t, view.Likes)
	assert.Empty(t, view.Collaborators)
}

func TestCreateIdea_ExplicitPhase(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")

	view, err := e.ideas.Create(context.Background(), ada, &dto.CreateIdeaRequest{
		Title: "T", Description: "D", Phase: strPtr("Build & Test"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, view.PhaseIndex)
}

func TestCreateIdea_Validation(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	ctx := context.Background()

	_, err := e.ideas.Create(ctx, ada, &dto.CreateIdeaRequest{Title: "   ", Description: "D"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.ideas.Create(ctx, ada, &dto.CreateIdeaRequest{Title: "T", Description: ""})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.ideas.Create(ctx, ada, &dto.CreateIdeaRequest{Title: "T", Description: "D", Phase: strPtr("Moonshot")})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCreateIdea_FallbackWhenAIUnavailable(t *testing.T) {
	for name, completer := range map[string]ai.Completer{
		"not configured": nil,
		"service error":  stubCompleter{err: errors.New("upstream 500")},
		"malformed json": stubCompleter{reply: "{not json"},
	} {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t, withCompleter(completer))
			ada := e.register(t, "ada", "")

			view := e.createIdea(t, ada, "Idea")

			require.NotNil(t, view.AIAnalysis)
			assert.Equal(t, ai.FallbackAnalysis(), *view.AIAnalysis)

			stored, ok := e.store.Idea(view.ID)
			require.True(t, ok)
			require.NotNil(t, stored.AIAnalysis)
			assert.Equal(t, ai.FallbackAnalysis(), *stored.AIAnalysis)
		})
	}
}

func TestCreateIdea_StoresAnalysis(t *testing.T) {
	e := newEnv(t, withCompleter(stubCompleter{reply: analysisJSON}))
	ada := e.register(t, "ada", "")

	view := e.createIdea(t, ada, "Idea", "ai")

	require.NotNil(t, view.AIAnalysis)
	assert.Equal(t, 8, view.AIAnalysis.MarketOpportunity.Score)
	assert.Equal(t, "Trello", view.AIAnalysis.SimilarSolutions[0].Name)
}

func TestCreateIdea_AsyncEnrichment(t *testing.T) {
	e := newEnv(t, withCompleter(stubCompleter{reply: analysisJSON}), withAsync())
	ada := e.register(t, "ada", "")

	view := e.createIdea(t, ada, "Idea")
	assert.Nil(t, view.AIAnalysis)

	e.enricher.Wait()

	stored, ok := e.store.Idea(view.ID)
	require.True(t, ok)
	require.NotNil(t, stored.AIAnalysis)
	assert.Equal(t, 8, stored.AIAnalysis.MarketOpportunity.Score)
}

func TestUpdateIdea_Partial(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Old title", "ai", "tools")

	view, err := e.ideas.Update(context.Background(), ada, created.ID, &dto.UpdateIdeaRequest{Title: strPtr("New title")})
	require.NoError(t, err)

	assert.Equal(t, "New title", view.Title)
	assert.Equal(t, created.Description, view.Description)
	assert.Equal(t, []string{"ai", "tools"}, view.Tags)
	assert.Equal(t, created.Phase, view.Phase)
	assert.NotNil(t, view.AIAnalysis)
}

func TestUpdateIdea_Phase(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Idea")
	ctx := context.Background()

	view, err := e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{PhaseIndex: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Plan & Strategy", view.Phase)

	view, err = e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{Phase: strPtr("Launch Ready")})
	require.NoError(t, err)
	assert.Equal(t, 4, view.PhaseIndex)

	view, err = e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{Phase: strPtr("Build & Test"), PhaseIndex: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, view.PhaseIndex)

	_, err = e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{Phase: strPtr("Build & Test"), PhaseIndex: intPtr(1)})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{PhaseIndex: intPtr(5)})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.ideas.Update(ctx, ada, created.ID, &dto.UpdateIdeaRequest{Title: strPtr("  ")})
	assert.ErrorIs(t, err, services.ErrValidation)

	stored, _ := e.store.Idea(created.ID)
	assert.Equal(t, "Build & Test", stored.Phase)
	assert.Equal(t, 3, stored.PhaseIndex)
}

func TestUpdateIdea_Access(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	bob := e.register(t, "bob", "")
	created := e.createIdea(t, ada, "Idea")
	ctx := context.Background()

	_, err := e.ideas.Update(ctx, bob, created.ID, &dto.UpdateIdeaRequest{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = e.ideas.Update(ctx, bob, uuid.New(), &dto.UpdateIdeaRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListFeed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada", "")
	bob := e.register(t, "bob", "")
	cat := e.register(t, "cat", "")

	first := e.createIdea(t, ada, "First")
	second := e.createIdea(t, bob, "Second")

	_, err := e.social.ToggleLike(ctx, bob, first.ID)
	require.NoError(t, err)
	_, err = e.social.ToggleLike(ctx, cat, first.ID)
	require.NoError(t, err)
	e.store.AddComment(first.ID, bob.UserID, "nice")

	req, err := e.social.RequestCollaboration(ctx, cat, first.ID, "count me in")
	require.NoError(t, err)
	_, err = e.social.TransitionCollaboration(ctx, ada, req.ID, models.CollabAccepted)
	require.NoError(t, err)

	feed, err := e.ideas.ListFeed(ctx, bob)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, first.ID, feed[1].ID)

	assert.EqualValues(t, 2, feed[1].Likes)
	assert.EqualValues(t, 1, feed[1].Comments)
	assert.Equal(t, []string{"cat"}, feed[1].Collaborators)
	assert.True(t, feed[1].IsLiked)
	assert.Equal(t, "ada", feed[1].AuthorName)

	assert.Zero(t, feed[0].Likes)
	assert.False(t, feed[0].IsLiked)
	assert.Equal(t, []string{}, feed[0].Collaborators)
}

func TestListPublicFeed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada", "")

	hidden := models.Idea{ID: uuid.New(), Title: "Hidden", Description: "D", AuthorID: ada.UserID, Phase: models.Phases[0]}
	require.NoError(t, e.store.Stores().Ideas.Create(ctx, &hidden))

	var last *dto.IdeaView
	for i := 0; i < services.PublicFeedLimit+2; i++ {
		last = e.createIdea(t, ada, "Idea")
	}
	_, err := e.social.ToggleLike(ctx, ada, last.ID)
	require.NoError(t, err)

	feed, err := e.ideas.ListPublicFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, services.PublicFeedLimit)

	assert.Equal(t, last.ID, feed[0].ID)
	assert.EqualValues(t, 1, feed[0].Likes)
	for _, v := range feed {
		assert.False(t, v.IsLiked)
		assert.NotEqual(t, hidden.ID, v.ID)
	}
}

func TestListFeed_Empty(t *testing.T) {
	e := newEnv(t)
	feed, err := e.ideas.ListFeed(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestReanalyze(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	bob := e.register(t, "bob", "")
	created := e.createIdea(t, ada, "Idea")
	ctx := context.Background()

	_, err := e.ideas.Reanalyze(ctx, bob, created.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	view, err := e.ideas.Reanalyze(ctx, ada, created.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AIAnalysis)
	assert.Equal(t, ai.FallbackAnalysis(), *view.AIAnalysis)
}

func TestReanalyze_KeepsAnalysisWhenServiceFails(t *testing.T) {
	completer := &switchCompleter{}
	e := newEnv(t, withCompleter(completer))
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Idea")
	require.NotNil(t, created.AIAnalysis)
	require.Equal(t, 8, created.AIAnalysis.MarketOpportunity.Score)

	completer.down.Store(true)
	view, err := e.ideas.Reanalyze(context.Background(), ada, created.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AIAnalysis)
	assert.Equal(t, 8, view.AIAnalysis.MarketOpportunity.Score)

	stored, found := e.store.Idea(created.ID)
	require.True(t, found)
	require.NotNil(t, stored.AIAnalysis)
	assert.Equal(t, 8, stored.AIAnalysis.MarketOpportunity.Score)
	assert.Equal(t, "Large internal tooling market", stored.AIAnalysis.MarketOpportunity.Explanation)
}

func TestReanalyze_ReplacesFallback(t *testing.T) {
	completer := &switchCompleter{}
	completer.down.Store(true)
	e := newEnv(t, withCompleter(completer))
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Idea")
	require.NotNil(t, created.AIAnalysis)
	require.Equal(t, ai.FallbackAnalysis(), *created.AIAnalysis)

	completer.down.Store(false)
	view, err := e.ideas.Reanalyze(context.Background(), ada, created.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AIAnalysis)
	assert.Equal(t, 8, view.AIAnalysis.MarketOpportunity.Score)
}

func TestAsk(t *testing.T) {
	e := newEnv(t, withCompleter(stubCompleter{reply: "Talk to users."}))
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Idea")
	ctx := context.Background()

	resp, err := e.ideas.Ask(ctx, created.ID, "What next?")
	require.NoError(t, err)
	assert.Equal(t, "Talk to users.", resp.Answer)

	_, err = e.ideas.Ask(ctx, created.ID, "   ")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = e.ideas.Ask(ctx, uuid.New(), "What next?")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAsk_Apology(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada", "")
	created := e.createIdea(t, ada, "Idea")

	resp, err := e.ideas.Ask(context.Background(), created.ID, "What next?")
	require.NoError(t, err)
	assert.Equal(t, ai.AssistantApology, resp.Answer)
}
