package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IdeaHandler struct {
	ideaService *services.IdeaService
}

func NewIdeaHandler(ideaService *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

func (h *IdeaHandler) ListFeed(c *fiber.Ctx) error {
	feed, err := h.ideaService.ListFeed(c.UserContext(), middleware.CurrentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

func (h *IdeaHandler) ListPublic(c *fiber.Ctx) error {
	feed, err := h.ideaService.ListPublicFeed(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBody())
	}

	view, err := h.ideaService.Create(c.UserContext(), middleware.CurrentIdentity(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *IdeaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBody())
	}

	view, err := h.ideaService.Update(c.UserContext(), middleware.CurrentIdentity(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *IdeaHandler) Analyze(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	view, err := h.ideaService.Reanalyze(c.UserContext(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *IdeaHandler) Ask(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBody())
	}

	resp, err := h.ideaService.Ask(c.UserContext(), id, req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
