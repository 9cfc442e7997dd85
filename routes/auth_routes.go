package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
)

// RegisterAuthRoutes sets up authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	// Public authentication routes
	e.POST("/api/auth/login", authController.Login)

	// Protected session routes
	r := e.Group("/api/auth")
	r.Use(middleware.JWTMiddleware())
	r.POST("/logout", authController.Logout)
	r.GET("/me", authController.Me)
}
