package middleware

import (
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits callers whose current role is admin. The role comes
// from the users row read by IdentityResolver, never from token claims.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return unauthorized(c, "INVALID_TOKEN", "Unauthorized")
		}
		if !identity.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Code: "FORBIDDEN", Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
