package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping        func() error
	aiAvailable bool
}

// NewHealthHandler takes the database probe and whether an AI service is
// configured.
func NewHealthHandler(ping func() error, aiAvailable bool) *HealthHandler {
	return &HealthHandler{ping: ping, aiAvailable: aiAvailable}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	aiStatus := "fallback"
	if h.aiAvailable {
		aiStatus = "configured"
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		AI:        aiStatus,
	})
}
