package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// JWTProtected extracts the bearer token, checks its signature and stores it
// under Locals("user"). Claim rules are enforced by IdentityResolver.
func JWTProtected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: secret},
		Claims:     &security.Claims{},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(security.ClassifyTokenError(err), security.ErrTokenExpired) {
				return unauthorized(c, "EXPIRED_TOKEN", "Token has expired")
			}
			return unauthorized(c, "INVALID_TOKEN", "Unauthorized: invalid or missing token")
		},
	})
}

// IdentityResolver verifies the raw token through AuthService.Verify, which
// re-reads the user on every request, and stores the resulting identity. It
// must run after JWTProtected.
func IdentityResolver(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return unauthorized(c, "INVALID_TOKEN", "Unauthorized")
		}

		identity, err := auth.Verify(c.UserContext(), token.Raw)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrExpiredToken):
				return unauthorized(c, "EXPIRED_TOKEN", "Token has expired")
			case errors.Is(err, services.ErrInvalidToken):
				return unauthorized(c, "INVALID_TOKEN", "Unauthorized: invalid or missing token")
			}
			return err
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by IdentityResolver, or nil.
func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
	})
}
