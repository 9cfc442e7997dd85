package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
	"github.com/Abdullah4Jovera/crm_backend/models"
)

// RegisterLeadRoutes sets up the lead lifecycle routes
func RegisterLeadRoutes(e *echo.Echo, leadController *controllers.LeadController) {
	r := e.Group("/api/leads")
	r.Use(middleware.JWTMiddleware())

	r.POST("/create-lead", leadController.CreateLead)
	r.PUT("/transfer-lead/:id", leadController.TransferLead)
	r.PUT("/move-lead/:id", leadController.MoveLead)
	r.PUT("/edit-lead/:id", leadController.EditLead)
	r.PUT("/update-product-stage/:id", leadController.UpdateProductStage)
	r.GET("/get-leads", leadController.GetLeads)
	r.GET("/single-lead/:id", leadController.GetSingleLead)

	// Unscoped listing and deletion are reserved for admin roles
	r.GET("/get-all-leads", leadController.GetAllLeads,
		middleware.RequireRole(models.RoleCEO, models.RoleSuperadmin, models.RoleMD))
	r.DELETE("/:id", leadController.DeleteLead,
		middleware.RequireRole(models.RoleCEO, models.RoleSuperadmin, models.RoleMD))
}
