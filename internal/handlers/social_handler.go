package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SocialHandler struct {
	socialService *services.SocialService
}

func NewSocialHandler(socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) ToggleLike(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.socialService.ToggleLike(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *SocialHandler) Collaborate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CollaborateRequest
	// An empty body is a request without a message.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, invalidBody())
		}
	}

	created, err := h.socialService.RequestCollaboration(c.UserContext(), middleware.CurrentIdentity(c), id, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *SocialHandler) UpdateCollaboration(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CollaborationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBody())
	}

	updated, err := h.socialService.TransitionCollaboration(c.UserContext(), middleware.CurrentIdentity(c), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}
