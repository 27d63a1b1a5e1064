package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Role is the single role taxonomy shared by every authorization check.
// Token verification itself happens in the gateway in front of this service;
// the verified identity arrives on trusted headers.
type Role string

const (
	// RoleAdmin has full access to every endpoint.
	RoleAdmin Role = "admin"
	// RoleOperator is RDC staff planning routes and reading analytics.
	RoleOperator Role = "operator"
	// RoleDriver is delivery staff reporting locations and completions.
	RoleDriver Role = "driver"
)

// Header names populated by the authenticating gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Locals keys for the authenticated identity.
const (
	LocalUserID   = "userID"
	LocalUserRole = "userRole"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleDriver:
		return true
	}
	return false
}

// RequireRole returns middleware that admits only the given roles.
// Requests without a verified identity get 401, a mismatched role gets 403.
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		role := Role(c.Get(HeaderUserRole))

		if userID == "" || !role.Valid() {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "authentication required",
				"ray_id":  c.Locals("requestid"),
			})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, role)

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "access denied",
			"ray_id":  c.Locals("requestid"),
		})
	}
}

// RequireSelfOrAdmin returns middleware that admits the user whose id equals
// the named route parameter, or an admin. Used for driver-scoped reads.
func RequireSelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		role := Role(c.Get(HeaderUserRole))

		if userID == "" || !role.Valid() {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "authentication required",
				"ray_id":  c.Locals("requestid"),
			})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, role)

		if role == RoleAdmin || userID == c.Params(param) {
			return c.Next()
		}

		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "access denied",
			"ray_id":  c.Locals("requestid"),
		})
	}
}
