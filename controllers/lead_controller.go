// controllers/lead_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
	"github.com/Abdullah4Jovera/crm_backend/services"
	"github.com/Abdullah4Jovera/crm_backend/utils"
)

// LeadController handles the lead lifecycle endpoints
type LeadController struct {
	service *services.LeadService
	leads   *repositories.LeadRepository
}

func NewLeadController(service *services.LeadService, leads *repositories.LeadRepository) *LeadController {
	return &LeadController{service: service, leads: leads}
}

// CreateLead handles POST /api/leads/create-lead
func (lc *LeadController) CreateLead(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "missing required fields",
		})
	}

	input := services.CreateLeadInput{
		Actor:       actor,
		ClientPhone: req.ClientPhone,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Description: req.Description,
	}
	if input.Pipeline, err = parseObjectID(req.Pipeline, "pipeline"); err != nil {
		return serviceError(c, err)
	}
	if input.Branch, err = parseObjectID(req.Branch, "branch"); err != nil {
		return serviceError(c, err)
	}
	if input.Product, err = parseObjectID(req.Products, "products"); err != nil {
		return serviceError(c, err)
	}
	if input.ProductStage, err = parseObjectID(req.ProductStage, "product_stage"); err != nil {
		return serviceError(c, err)
	}
	if input.Source, err = parseObjectID(req.Source, "source"); err != nil {
		return serviceError(c, err)
	}
	if input.LeadType, err = parseObjectID(req.LeadType, "lead_type"); err != nil {
		return serviceError(c, err)
	}
	if input.SelectedUsers, err = parseObjectIDs(req.SelectedUsers); err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.service.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Lead created successfully",
		Data:    lead,
	})
}

// TransferLead handles PUT /api/leads/transfer-lead/:id
func (lc *LeadController) TransferLead(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.TransferLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "missing required fields",
		})
	}

	input := services.TransferLeadInput{Actor: actor}
	if input.Pipeline, err = parseObjectID(req.Pipeline, "pipeline"); err != nil {
		return serviceError(c, err)
	}
	if input.Branch, err = parseObjectID(req.Branch, "branch"); err != nil {
		return serviceError(c, err)
	}
	if input.Product, err = parseObjectID(req.Products, "products"); err != nil {
		return serviceError(c, err)
	}
	if input.ProductStage, err = parseObjectID(req.ProductStage, "product_stage"); err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.service.Transfer(c.Request().Context(), leadID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead transferred successfully",
		Data:    lead,
	})
}

// MoveLead handles PUT /api/leads/move-lead/:id
func (lc *LeadController) MoveLead(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.MoveLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "missing required fields",
		})
	}

	input := services.MoveLeadInput{Actor: actor}
	if input.Pipeline, err = parseObjectID(req.Pipeline, "pipeline"); err != nil {
		return serviceError(c, err)
	}
	if input.Branch, err = parseObjectID(req.Branch, "branch"); err != nil {
		return serviceError(c, err)
	}
	if input.ProductStage, err = parseObjectID(req.ProductStage, "product_stage"); err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.service.Move(c.Request().Context(), leadID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead moved successfully",
		Data:    lead,
	})
}

// EditLead handles PUT /api/leads/edit-lead/:id
func (lc *LeadController) EditLead(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.EditLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "missing required fields",
		})
	}

	input := services.EditLeadInput{
		Actor:       actor,
		ClientPhone: req.ClientPhone,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Description: req.Description,
	}
	if input.Pipeline, err = parseObjectID(req.Pipeline, "pipeline"); err != nil {
		return serviceError(c, err)
	}
	if input.Branch, err = parseObjectID(req.Branch, "branch"); err != nil {
		return serviceError(c, err)
	}
	if input.Product, err = parseObjectID(req.Products, "products"); err != nil {
		return serviceError(c, err)
	}
	if input.ProductStage, err = parseObjectID(req.ProductStage, "product_stage"); err != nil {
		return serviceError(c, err)
	}
	if input.Source, err = parseObjectID(req.Source, "source"); err != nil {
		return serviceError(c, err)
	}
	if input.LeadType, err = parseObjectID(req.LeadType, "lead_type"); err != nil {
		return serviceError(c, err)
	}
	if input.SelectedUsers, err = parseObjectIDs(req.SelectedUsers); err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.service.Edit(c.Request().Context(), leadID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead updated successfully",
		Data:    lead,
	})
}

// UpdateProductStage handles PUT /api/leads/update-product-stage/:id
func (lc *LeadController) UpdateProductStage(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.UpdateProductStageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "newProductStageId is required",
		})
	}

	newStage, err := parseObjectID(req.NewProductStageID, "newProductStageId")
	if err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.service.UpdateProductStage(c.Request().Context(), leadID, actor, newStage)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product stage updated successfully",
		Data:    lead,
	})
}

// GetLeads handles GET /api/leads/get-leads: leads visible to the caller
func (lc *LeadController) GetLeads(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	page, limit := pagination(c)
	leads, totalPages, err := lc.leads.ListForUser(c.Request().Context(), actor, page, limit)
	if err != nil {
		c.Logger().Errorf("listing leads failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve leads",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leads retrieved successfully",
		Data: models.LeadListResponse{
			Leads:       leads,
			TotalPages:  totalPages,
			CurrentPage: page,
		},
	})
}

// GetAllLeads handles GET /api/leads/get-all-leads: unscoped listing for
// admin roles, optionally filtered by pipeline and branch
func (lc *LeadController) GetAllLeads(c echo.Context) error {
	var pipeline, branch *primitive.ObjectID
	if raw := c.QueryParam("pipeline"); raw != "" {
		id, err := parseObjectID(raw, "pipeline")
		if err != nil {
			return serviceError(c, err)
		}
		pipeline = &id
	}
	if raw := c.QueryParam("branch"); raw != "" {
		id, err := parseObjectID(raw, "branch")
		if err != nil {
			return serviceError(c, err)
		}
		branch = &id
	}

	page, limit := pagination(c)
	leads, totalPages, err := lc.leads.ListAll(c.Request().Context(), pipeline, branch, page, limit)
	if err != nil {
		c.Logger().Errorf("listing all leads failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve leads",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leads retrieved successfully",
		Data: models.LeadListResponse{
			Leads:       leads,
			TotalPages:  totalPages,
			CurrentPage: page,
		},
	})
}

// GetSingleLead handles GET /api/leads/single-lead/:id
func (lc *LeadController) GetSingleLead(c echo.Context) error {
	actor, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	lead, err := lc.leads.FindByID(c.Request().Context(), leadID)
	if err != nil {
		c.Logger().Errorf("loading lead failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve lead",
		})
	}
	if lead == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}
	if !lead.IsVisibleTo(actor) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You are not authorized to view this lead",
		})
	}

	populated, err := lc.leads.GetPopulated(c.Request().Context(), leadID)
	if err != nil {
		c.Logger().Errorf("populating lead failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve lead",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead retrieved successfully",
		Data:    populated,
	})
}

// DeleteLead handles DELETE /api/leads/:id (soft delete)
func (lc *LeadController) DeleteLead(c echo.Context) error {
	leadID, err := parseObjectID(c.Param("id"), "lead id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := lc.leads.SoftDelete(c.Request().Context(), leadID); err != nil {
		c.Logger().Errorf("deleting lead failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete lead",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead deleted successfully",
	})
}

func parseObjectID(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, services.ValidationError("invalid " + field)
	}
	return id, nil
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, services.ValidationError("invalid selected_users")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pagination(c echo.Context) (page, limit int) {
	page = 1
	limit = 20
	if raw := c.QueryParam("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	return page, limit
}
