package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
)

const (
	maxSimilarSolutions = 5
	maxRecommendations  = 3
	maxRisks            = 3

	// AssistantApology is returned when the assistant cannot answer.
	AssistantApology = "I'm sorry, I couldn't process your question right now. Please try again later."
)

// FallbackAnalysis returns the fixed payload stored when analysis fails.
// Each call returns a fresh copy.
func FallbackAnalysis() models.Analysis {
	return models.Analysis{
		SimilarSolutions: []models.SimilarSolution{
			{Name: "Market research needed", Description: "Similar solutions need further research."},
		},
		MarketOpportunity: models.MarketOpportunity{
			Score:       5,
			Explanation: "Analysis pending - AI service temporarily unavailable.",
		},
		Recommendations: []string{
			"Conduct thorough market research",
			"Validate the idea with potential users",
			"Build a minimum viable product",
		},
		Risks: []string{
			"Market competition",
			"Resource requirements",
			"User adoption challenges",
		},
	}
}

// Analyzer produces idea analyses and assistant answers. It never returns the
// service's errors to callers.
type Analyzer struct {
	completer Completer
	timeout   time.Duration
}

// NewAnalyzer accepts a nil completer; every call then falls back.
func NewAnalyzer(completer Completer, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{completer: completer, timeout: timeout}
}

// IsAvailable reports whether an external service is configured.
func (a *Analyzer) IsAvailable() bool {
	return a.completer != nil
}

// AnalyzeIdea returns the service's assessment, or FallbackAnalysis on any
// failure. ok is false when the fallback was substituted.
func (a *Analyzer) AnalyzeIdea(ctx context.Context, title, description string, tags []string) (analysis models.Analysis, ok bool) {
	return withFallback(ctx, a, "analyze_idea", FallbackAnalysis, func(ctx context.Context) (models.Analysis, error) {
		raw, err := a.completer.Complete(ctx, analysisSystemPrompt, analysisPrompt(title, description, tags))
		if err != nil {
			return models.Analysis{}, err
		}
		return ParseAnalysis(raw)
	})
}

// Answer returns a short reply to question about the idea, or AssistantApology on failure.
func (a *Analyzer) Answer(ctx context.Context, question, title, description, phase string) string {
	apology := func() string { return AssistantApology }
	answer, _ := withFallback(ctx, a, "assistant", apology, func(ctx context.Context) (string, error) {
		raw, err := a.completer.Complete(ctx, assistantSystemPrompt, assistantPrompt(question, title, description, phase))
		if err != nil {
			return "", err
		}
		answer := strings.TrimSpace(raw)
		if answer == "" {
			return "", fmt.Errorf("%w: empty answer", ErrService)
		}
		return answer, nil
	})
	return answer
}

// withFallback runs call under the analyzer timeout and substitutes fallback()
// for any error, including a missing completer. The bool is false when the
// fallback was used.
func withFallback[T any](ctx context.Context, a *Analyzer, action string, fallback func() T, call func(context.Context) (T, error)) (T, bool) {
	if a.completer == nil {
		slog.Warn("ai service not configured, using fallback", "action", action)
		return fallback(), false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	result, err := call(ctx)
	if err != nil {
		slog.Warn("ai call failed, using fallback",
			"action", action,
			"error", err,
			"latency_ms", float64(time.Since(start).Milliseconds()),
		)
		return fallback(), false
	}
	return result, true
}

// ParseAnalysis strips code fences from raw and decodes it. Lists are
// truncated to their caps; a missing score or explanation is an error so
// partial analyses are never stored.
func ParseAnalysis(raw string) (models.Analysis, error) {
	content := StripCodeFences(raw)

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return models.Analysis{}, fmt.Errorf("%w: malformed analysis JSON: %v", ErrService, err)
	}

	score := analysis.MarketOpportunity.Score
	if score < 1 || score > 10 {
		return models.Analysis{}, fmt.Errorf("%w: market opportunity score %d out of range", ErrService, score)
	}
	if strings.TrimSpace(analysis.MarketOpportunity.Explanation) == "" {
		return models.Analysis{}, fmt.Errorf("%w: missing market opportunity explanation", ErrService)
	}

	if len(analysis.SimilarSolutions) > maxSimilarSolutions {
		analysis.SimilarSolutions = analysis.SimilarSolutions[:maxSimilarSolutions]
	}
	if len(analysis.Recommendations) > maxRecommendations {
		analysis.Recommendations = analysis.Recommendations[:maxRecommendations]
	}
	if len(analysis.Risks) > maxRisks {
		analysis.Risks = analysis.Risks[:maxRisks]
	}
	if analysis.SimilarSolutions == nil {
		analysis.SimilarSolutions = []models.SimilarSolution{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	if analysis.Risks == nil {
		analysis.Risks = []string{}
	}
	return analysis, nil
}

// StripCodeFences removes a surrounding ``` or ```json fence.
func StripCodeFences(s string) string {
	content := strings.TrimSpace(s)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```JSON")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
