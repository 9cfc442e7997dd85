package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
	"github.com/Abdullah4Jovera/crm_backend/models"
)

// RegisterDealRoutes sets up deal, contract and commission routes
func RegisterDealRoutes(e *echo.Echo, dealController *controllers.DealController, contractController *controllers.ContractController, commissionController *controllers.ServiceCommissionController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.GET("/deals/get-deals", dealController.GetDeals)
	r.GET("/admin/reconciliation/commissions", dealController.CommissionReport,
		middleware.RequireRole(models.RoleCEO, models.RoleSuperadmin))

	r.GET("/contracts", contractController.GetContracts)
	r.GET("/contracts/:id", contractController.GetContract)
	r.PUT("/contracts/:id", contractController.UpdateContract)
	r.DELETE("/contracts/:id", contractController.DeleteContract,
		middleware.RequireRole(models.RoleCEO, models.RoleSuperadmin, models.RoleMD))
	r.GET("/contracts/:id/service-commission", contractController.GetContractCommission)

	r.GET("/service-commissions", commissionController.GetServiceCommissions,
		middleware.RequireCapability(models.CapViewReports))
	r.GET("/service-commissions/:id", commissionController.GetServiceCommission,
		middleware.RequireCapability(models.CapViewReports))
	r.GET("/service-commissions/by-deal/:dealId", commissionController.GetServiceCommissionByDeal,
		middleware.RequireCapability(models.CapViewReports))
	r.POST("/service-commissions", commissionController.CreateServiceCommission,
		middleware.RequireCapability(models.CapViewReports))
	r.PUT("/service-commissions/:id", commissionController.UpdateServiceCommission,
		middleware.RequireCapability(models.CapViewReports))
	r.DELETE("/service-commissions/:id", commissionController.DeleteServiceCommission,
		middleware.RequireRole(models.RoleCEO, models.RoleSuperadmin))
}
