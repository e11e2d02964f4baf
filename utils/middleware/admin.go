package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/response"
)

// RequireRole only lets through users whose role is one of roles. It must run after Required.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// RequireAdmin ensures the user has the admin role
func RequireAdmin() fiber.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequireStaff lets counselors and admins through
func RequireStaff() fiber.Handler {
	return RequireRole(model.RoleCounselor, model.RoleAdmin)
}
