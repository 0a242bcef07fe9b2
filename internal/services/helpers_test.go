package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

const analysisJSON = "```json\n" + `{
  "similar_solutions": [{"name": "Trello", "description": "Boards"}],
  "market_opportunity": {"score": 8, "explanation": "Large internal tooling market"},
  "recommendations": ["Interview teams"],
  "risks": ["Crowded space"]
}` + "\n```"

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

// switchCompleter replies with analysisJSON until down is set.
type switchCompleter struct {
	down atomic.Bool
}

func (s *switchCompleter) Complete(context.Context, string, string) (string, error) {
	if s.down.Load() {
		return "", errors.New("connection refused")
	}
	return analysisJSON, nil
}

type env struct {
	store    *testhelpers.MemStore
	auth     *services.AuthService
	ideas    *services.IdeaService
	social   *services.SocialService
	admin    *services.AdminService
	enricher *services.Enricher
}

type envOption func(*envConfig)

type envConfig struct {
	completer ai.Completer
	async     bool
}

func withCompleter(c ai.Completer) envOption {
	return func(cfg *envConfig) { cfg.completer = c }
}

func withAsync() envOption {
	return func(cfg *envConfig) { cfg.async = true }
}

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()
	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	store := testhelpers.NewMemStore()
	stores := store.Stores()
	analyzer := ai.NewAnalyzer(cfg.completer, time.Second)
	enricher := services.NewEnricher(stores.Ideas, analyzer, cfg.async)

	return &env{
		store:    store,
		auth:     services.NewAuthService(stores.Users, security.NewBcryptHasher(), security.NewJWTSigner("test-secret", time.Hour)),
		ideas:    services.NewIdeaService(stores, enricher, analyzer),
		social:   services.NewSocialService(stores),
		admin:    services.NewAdminService(stores),
		enricher: enricher,
	}
}

// register creates a user and returns its identity.
func (e *env) register(t *testing.T, name, role string) *services.Identity {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return &services.Identity{UserID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email, Role: resp.User.Role}
}

func (e *env) registerAdmin(t *testing.T, name string) *services.Identity {
	t.Helper()
	id := e.register(t, name, models.RoleEmployee)
	e.store.SetRole(id.UserID, models.RoleAdmin)
	id.Role = models.RoleAdmin
	return id
}

func (e *env) createIdea(t *testing.T, author *services.Identity, title string, tags ...string) *dto.IdeaView {
	t.Helper()
	view, err := e.ideas.Create(context.Background(), author, &dto.CreateIdeaRequest{
		Title:       title,
		Description: title + " description",
		Tags:        tags,
	})
	require.NoError(t, err)
	return view
}
