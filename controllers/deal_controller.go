// controllers/deal_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
	"github.com/Abdullah4Jovera/crm_backend/services"
)

// DealController serves deal listings and the commission reconciliation report
type DealController struct {
	deals          *repositories.DealRepository
	reconciliation *services.ReconciliationService
}

func NewDealController(deals *repositories.DealRepository, reconciliation *services.ReconciliationService) *DealController {
	return &DealController{deals: deals, reconciliation: reconciliation}
}

// GetDeals handles GET /api/deals/get-deals
func (dc *DealController) GetDeals(c echo.Context) error {
	deals, err := dc.deals.ListPopulated(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("listing deals failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve deals",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Deals retrieved successfully",
		Data:    deals,
	})
}

// CommissionReport handles GET /api/deals/commission-report. It lists deals
// whose commission reference is unset or points at a missing record.
func (dc *DealController) CommissionReport(c echo.Context) error {
	report, err := dc.reconciliation.CommissionReport(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission report generated successfully",
		Data:    report,
	})
}
