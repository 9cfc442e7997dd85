package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/controllers"
	"github.com/Abdullah4Jovera/crm_backend/middleware"
	"github.com/Abdullah4Jovera/crm_backend/models"
)

// RegisterCatalogRoutes sets up the lookup-collection routes. Reads are open
// to any authenticated user; writes need the catalog management capability.
func RegisterCatalogRoutes(e *echo.Echo, catalogController *controllers.CatalogController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.GET("/pipelines", catalogController.GetPipelines)
	r.GET("/branches", catalogController.GetBranches)
	r.GET("/lead-types", catalogController.GetLeadTypes)
	r.GET("/sources", catalogController.GetSources)
	r.GET("/products", catalogController.GetProducts)
	r.GET("/product-stages", catalogController.GetProductStages)
	r.GET("/deal-stages", catalogController.GetDealStages)

	w := r.Group("", middleware.RequireCapability(models.CapManageCatalogs))
	w.POST("/pipelines", catalogController.CreatePipeline)
	w.POST("/branches", catalogController.CreateBranch)
	w.POST("/lead-types", catalogController.CreateLeadType)
	w.PUT("/lead-types/:id", catalogController.UpdateLeadType)
	w.DELETE("/lead-types/:id", catalogController.DeleteLeadType)
	w.POST("/sources", catalogController.CreateSource)
	w.POST("/products", catalogController.CreateProduct)
	w.POST("/product-stages", catalogController.CreateProductStage)
	w.PUT("/product-stages/:id", catalogController.UpdateProductStage)
	w.DELETE("/product-stages/:id", catalogController.DeleteProductStage)
	w.POST("/deal-stages", catalogController.CreateDealStage)
	w.PUT("/deal-stages/:id", catalogController.UpdateDealStage)
	w.DELETE("/deal-stages/:id", catalogController.DeleteDealStage)
}
