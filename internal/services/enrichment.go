package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
)

const analysisWriteTimeout = 10 * time.Second

// Enricher attaches AI analyses to ideas that are already persisted. A
// failed or slow analysis never undoes the idea.
type Enricher struct {
	ideas    IdeaStore
	analyzer *ai.Analyzer
	async    bool
	wg       sync.WaitGroup
}

func NewEnricher(ideas IdeaStore, analyzer *ai.Analyzer, async bool) *Enricher {
	return &Enricher{ideas: ideas, analyzer: analyzer, async: async}
}

// Enrich analyzes idea and stores the result. A fallback never replaces an
// analysis the idea already carries. In sync mode idea.AIAnalysis is set when
// the write succeeds; in async mode it returns immediately.
func (e *Enricher) Enrich(ctx context.Context, idea *models.Idea) {
	if !e.async {
		e.run(ctx, idea)
		return
	}

	detached := *idea
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.run(context.Background(), &detached)
	}()
}

// Wait blocks until detached enrichments finish.
func (e *Enricher) Wait() {
	e.wg.Wait()
}

func (e *Enricher) run(ctx context.Context, idea *models.Idea) {
	analysis, ok := e.analyzer.AnalyzeIdea(ctx, idea.Title, idea.Description, idea.Tags)
	if !ok && idea.AIAnalysis != nil {
		slog.Warn("keeping stored idea analysis", "idea_id", idea.ID.String())
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), analysisWriteTimeout)
	defer cancel()

	if err := e.ideas.SetAnalysis(writeCtx, idea.ID, &analysis); err != nil {
		slog.Error("failed to store idea analysis", "idea_id", idea.ID.String(), "error", err)
		return
	}
	idea.AIAnalysis = &analysis
}
