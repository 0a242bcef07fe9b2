package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{services.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
	{services.ErrDuplicateIdentity, fiber.StatusConflict, "DUPLICATE_IDENTITY"},
	{services.ErrDuplicateRequest, fiber.StatusConflict, "DUPLICATE_REQUEST"},
	{services.ErrSelfCollaboration, fiber.StatusBadRequest, "SELF_COLLABORATION"},
	{services.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{services.ErrExpiredToken, fiber.StatusUnauthorized, "EXPIRED_TOKEN"},
	{services.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{services.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{services.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

const codeInternal = "INTERNAL_ERROR"

// respondError writes the JSON error body for err. Unknown errors are logged,
// reported to Sentry and hidden behind a generic message.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{
				Error: true, Code: m.code, Message: err.Error(),
			})
		}
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: codeInternal, Message: "Internal server error",
	})
}

// ErrorHandler is the Fiber error handler. Service errors that reach it are
// mapped like handler errors; 5xx details are never exposed.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return respondError(c, err)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{
			Error: true, Code: httpCode(fe.Code), Message: fe.Message,
		})
	}
	return respondError(c, err)
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION_ERROR"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	default:
		return fmt.Sprintf("HTTP_%d", status)
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func invalidBody() error {
	return fmt.Errorf("%w: invalid request body", services.ErrValidation)
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", services.ErrValidation)
	}
	return id, nil
}
