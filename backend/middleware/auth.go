package middleware

import (
	"examprep-backend/backend/config"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const userClaimsKey = "userClaims"

// AuthMiddleware verifies the bearer token and stores its claims on the
// request context. The error message distinguishes missing, invalid and
// expired tokens.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractTokenClaims(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}
		c.Locals(userClaimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth attaches user claims when a valid token is present but never
// rejects the request.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := utils.ExtractTokenClaims(c, cfg); err == nil {
			c.Locals(userClaimsKey, claims)
		}
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthMiddleware. The boolean is
// false on routes that only use OptionalAuth and got no token.
func CurrentUser(c *fiber.Ctx) (utils.TokenClaims, bool) {
	claims, ok := c.Locals(userClaimsKey).(utils.TokenClaims)
	return claims, ok
}
