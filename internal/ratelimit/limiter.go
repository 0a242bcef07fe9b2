// Package ratelimit holds the two request budgets applied to the API: a
// general budget on every route and a tighter one on routes that call the
// AI service.
package ratelimit

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	headerLimit     = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
)

// Tier is one budget. Prefix namespaces its counters so tiers sharing a
// storage never collide.
type Tier struct {
	Prefix string
	Max    int
	Window time.Duration
}

func GeneralTier(cfg *config.Config) Tier {
	return Tier{Prefix: "api", Max: cfg.RateLimitMax, Window: cfg.RateLimitWindow}
}

func AITier(cfg *config.Config) Tier {
	return Tier{Prefix: "ai", Max: cfg.AIRateLimitMax, Window: cfg.AIRateLimitWindow}
}

// New builds a sliding-window limiter keyed by client IP. A nil counter keeps
// counters in process memory.
func New(tier Tier, counter *RedisCounter) fiber.Handler {
	key := func(c *fiber.Ctx) string {
		return tier.Prefix + ":" + c.IP()
	}
	reject := limitReached(tier)

	if counter == nil {
		return limiter.New(limiter.Config{
			Max:               tier.Max,
			Expiration:        tier.Window,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      key,
			LimitReached:      reject,
		})
	}

	return func(c *fiber.Ctx) error {
		rate, resetIn, err := counter.Hit(c.UserContext(), key(c), tier.Window)
		if err != nil {
			// Redis outages degrade to no limiting rather than refusing traffic.
			slog.Error("rate limiter unavailable", "tier", tier.Prefix, "error", err)
			return c.Next()
		}

		c.Set(headerLimit, strconv.Itoa(tier.Max))
		c.Set(headerRemaining, strconv.Itoa(max(tier.Max-rate, 0)))
		if rate > tier.Max {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(resetIn.Seconds()))))
			return reject(c)
		}
		return c.Next()
	}
}

func limitReached(tier Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slog.Warn("rate limit exceeded",
			"tier", tier.Prefix,
			"ip", c.IP(),
			"path", c.Path(),
		)
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    CodeRateLimitExceeded,
			Message: "Too many requests, please try again later",
		})
	}
}
