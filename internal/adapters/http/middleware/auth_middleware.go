package middleware

import (
	"strings"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/config"
	"technotes-api/internal/pkg/jwt"
	"technotes-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware authenticates a request from its bearer token. A missing
// token is 401; a token that fails verification (bad signature or expired)
// is 403. Authentication always runs before any role check.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Unauthorized")
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			return response.Forbidden(c, "Forbidden")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("roles", models.Roles(claims.Roles))

		return c.Next()
	}
}

// RoleMiddleware authorizes a request when its role set intersects the
// allow-list
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").(models.Roles)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if roles.IntersectsAny(allowedRoles...) {
			return c.Next()
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// ManagerOrAdmin allows only Manager or Admin roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(models.RoleManager, models.RoleAdmin)
}
