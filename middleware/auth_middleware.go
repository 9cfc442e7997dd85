// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// RequireRole checks if the authenticated user holds one of the allowed roles
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			// If no role found, deny access
			if role == "" {
				c.Logger().Error("Authentication failed: role not found")
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: role not found",
				})
			}

			for _, a := range allowed {
				if role == a {
					return next(c)
				}
			}

			c.Logger().Errorf("Access denied for role: %s, allowed roles: %v", role, allowed)
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied for your role",
			})
		}
	}
}

// RequireCapability checks the authenticated role against the capability map
func RequireCapability(capability models.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: role not found",
				})
			}

			if !models.Can(role, capability) {
				c.Logger().Errorf("Access denied for role %s: missing capability %s", role, capability)
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Access denied: insufficient permissions",
				})
			}

			return next(c)
		}
	}
}

// DebugMiddleware prints token info for debugging
func DebugMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetUserFromToken(c)
			if claims != nil {
				c.Logger().Infof("User ID: %s, Role: %s, Email: %s",
					claims.UserID, claims.Role, claims.Email)
			} else {
				c.Logger().Info("No user claims found")
			}
			return next(c)
		}
	}
}
