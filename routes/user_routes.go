package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
	"github.com/Abdullah4Jovera/crm_backend/models"
)

// RegisterUserRoutes sets up user management routes
func RegisterUserRoutes(e *echo.Echo, userController *controllers.UserController) {
	r := e.Group("/api/users")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireCapability(models.CapManageUsers))

	r.GET("", userController.GetUsers)
	r.GET("/:id", userController.GetUser)
	r.POST("", userController.CreateUser)
	r.PUT("/:id", userController.UpdateUser)
	r.DELETE("/:id", userController.DeleteUser)
}
