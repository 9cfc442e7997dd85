package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
)

// Controllers collects every controller the route registration needs.
type Controllers struct {
	Auth              *controllers.AuthController
	Users             *controllers.UserController
	Leads             *controllers.LeadController
	Deals             *controllers.DealController
	Contracts         *controllers.ContractController
	ServiceCommission *controllers.ServiceCommissionController
	Catalog           *controllers.CatalogController
}

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, c Controllers) {
	RegisterAuthRoutes(e, c.Auth)
	RegisterUserRoutes(e, c.Users)
	RegisterLeadRoutes(e, c.Leads)
	RegisterDealRoutes(e, c.Deals, c.Contracts, c.ServiceCommission)
	RegisterCatalogRoutes(e, c.Catalog)
}
