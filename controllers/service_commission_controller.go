// controllers/service_commission_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
)

// ServiceCommissionController manages commission breakdown records
type ServiceCommissionController struct {
	commissions *repositories.CommissionRepository
}

func NewServiceCommissionController(commissions *repositories.CommissionRepository) *ServiceCommissionController {
	return &ServiceCommissionController{commissions: commissions}
}

// GetServiceCommissions handles GET /api/service-commissions
func (sc *ServiceCommissionController) GetServiceCommissions(c echo.Context) error {
	records, err := sc.commissions.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("listing commissions failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve service commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commissions retrieved successfully",
		Data:    records,
	})
}

// GetServiceCommission handles GET /api/service-commissions/:id,
// returning the record along with its computed total
func (sc *ServiceCommissionController) GetServiceCommission(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "commission id")
	if err != nil {
		return serviceError(c, err)
	}

	record, err := sc.commissions.FindByID(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("loading commission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve service commission",
		})
	}
	if record == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Service commission not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commission retrieved successfully",
		Data: map[string]interface{}{
			"commission": record,
			"total":      record.Total(),
		},
	})
}

// GetServiceCommissionByDeal handles GET /api/service-commissions/by-deal/:dealId
func (sc *ServiceCommissionController) GetServiceCommissionByDeal(c echo.Context) error {
	deal, err := parseObjectID(c.Param("dealId"), "deal id")
	if err != nil {
		return serviceError(c, err)
	}

	record, err := sc.commissions.FindByDeal(c.Request().Context(), deal)
	if err != nil {
		c.Logger().Errorf("loading commission for deal failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve service commission",
		})
	}
	if record == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No service commission recorded for this deal",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commission retrieved successfully",
		Data: map[string]interface{}{
			"commission": record,
			"total":      record.Total(),
		},
	})
}

// CreateServiceCommission handles POST /api/service-commissions
func (sc *ServiceCommissionController) CreateServiceCommission(c echo.Context) error {
	var record models.ServiceCommission
	if err := c.Bind(&record); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	now := time.Now()
	record.ID = primitive.NilObjectID
	record.DelStatus = false
	record.CreatedAt = now
	record.UpdatedAt = now

	id, err := sc.commissions.Insert(c.Request().Context(), &record)
	if err != nil {
		c.Logger().Errorf("creating commission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create service commission",
		})
	}
	record.ID = id

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Service commission created successfully",
		Data:    record,
	})
}

// UpdateServiceCommission handles PUT /api/service-commissions/:id
func (sc *ServiceCommissionController) UpdateServiceCommission(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "commission id")
	if err != nil {
		return serviceError(c, err)
	}

	var fields bson.M
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "created_at")

	err = sc.commissions.Update(c.Request().Context(), id, fields)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Service commission not found",
		})
	}
	if err != nil {
		c.Logger().Errorf("updating commission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update service commission",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commission updated successfully",
	})
}

// DeleteServiceCommission handles DELETE /api/service-commissions/:id
func (sc *ServiceCommissionController) DeleteServiceCommission(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "commission id")
	if err != nil {
		return serviceError(c, err)
	}

	err = sc.commissions.SoftDelete(c.Request().Context(), id)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Service commission not found",
		})
	}
	if err != nil {
		c.Logger().Errorf("deleting commission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete service commission",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commission deleted successfully",
	})
}
