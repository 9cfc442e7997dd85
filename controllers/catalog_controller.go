// controllers/catalog_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
	"github.com/Abdullah4Jovera/crm_backend/utils"
)

// CatalogController serves the lookup collections leads and deals point
// into. Creation goes through the shared find-or-create upsert so repeated
// names never produce duplicates.
type CatalogController struct {
	db       *mongo.Database
	catalogs *repositories.CatalogRepository
}

func NewCatalogController(db *mongo.Database, catalogs *repositories.CatalogRepository) *CatalogController {
	return &CatalogController{db: db, catalogs: catalogs}
}

type createNamedRequest struct {
	Name string `json:"name" validate:"required"`
}

func (cc *CatalogController) list(c echo.Context, collection string, filter bson.M, sort bson.D, out interface{}) error {
	ctx := c.Request().Context()
	filter["delstatus"] = false

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := cc.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func listError(c echo.Context, what string, err error) error {
	c.Logger().Errorf("listing %s failed: %v", what, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: "Failed to retrieve " + what,
	})
}

func listOK(c echo.Context, what string, data interface{}) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: what + " retrieved successfully",
		Data:    data,
	})
}

// GetPipelines handles GET /api/pipelines
func (cc *CatalogController) GetPipelines(c echo.Context) error {
	pipelines := []models.Pipeline{}
	if err := cc.list(c, "pipelines", bson.M{}, bson.D{{Key: "name", Value: 1}}, &pipelines); err != nil {
		return listError(c, "pipelines", err)
	}
	return listOK(c, "Pipelines", pipelines)
}

// CreatePipeline handles POST /api/pipelines
func (cc *CatalogController) CreatePipeline(c echo.Context) error {
	return cc.createNamed(c, "Pipeline", func(name, createdBy string) (interface{}, error) {
		return cc.catalogs.FindOrCreatePipeline(c.Request().Context(), name, createdBy)
	})
}

// GetBranches handles GET /api/branches
func (cc *CatalogController) GetBranches(c echo.Context) error {
	branches := []models.Branch{}
	if err := cc.list(c, "branches", bson.M{}, bson.D{{Key: "name", Value: 1}}, &branches); err != nil {
		return listError(c, "branches", err)
	}
	return listOK(c, "Branches", branches)
}

// CreateBranch handles POST /api/branches
func (cc *CatalogController) CreateBranch(c echo.Context) error {
	return cc.createNamed(c, "Branch", func(name, _ string) (interface{}, error) {
		return cc.catalogs.FindOrCreateBranch(c.Request().Context(), name)
	})
}

// GetLeadTypes handles GET /api/lead-types
func (cc *CatalogController) GetLeadTypes(c echo.Context) error {
	leadTypes := []models.LeadType{}
	if err := cc.list(c, "leadtypes", bson.M{}, bson.D{{Key: "name", Value: 1}}, &leadTypes); err != nil {
		return listError(c, "lead types", err)
	}
	return listOK(c, "Lead types", leadTypes)
}

// CreateLeadType handles POST /api/lead-types
func (cc *CatalogController) CreateLeadType(c echo.Context) error {
	return cc.createNamed(c, "Lead type", func(name, createdBy string) (interface{}, error) {
		return cc.catalogs.FindOrCreateLeadType(c.Request().Context(), name, createdBy)
	})
}

// GetSources handles GET /api/sources; ?lead_type= filters by owning lead type
func (cc *CatalogController) GetSources(c echo.Context) error {
	filter := bson.M{}
	if raw := c.QueryParam("lead_type"); raw != "" {
		id, err := parseObjectID(raw, "lead_type")
		if err != nil {
			return serviceError(c, err)
		}
		filter["lead_type_id"] = id
	}

	sources := []models.Source{}
	if err := cc.list(c, "sources", filter, bson.D{{Key: "name", Value: 1}}, &sources); err != nil {
		return listError(c, "sources", err)
	}
	return listOK(c, "Sources", sources)
}

// CreateSource handles POST /api/sources
func (cc *CatalogController) CreateSource(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		LeadType string `json:"lead_type" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name and lead_type are required",
		})
	}

	leadType, err := parseObjectID(req.LeadType, "lead_type")
	if err != nil {
		return serviceError(c, err)
	}

	id, err := cc.catalogs.FindOrCreateSource(c.Request().Context(), req.Name, leadType, creatorName(c))
	if err != nil {
		c.Logger().Errorf("creating source failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create source",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Source created successfully",
		Data:    map[string]interface{}{"id": id},
	})
}

// GetProducts handles GET /api/products
func (cc *CatalogController) GetProducts(c echo.Context) error {
	products := []models.Product{}
	if err := cc.list(c, "products", bson.M{}, bson.D{{Key: "name", Value: 1}}, &products); err != nil {
		return listError(c, "products", err)
	}
	return listOK(c, "Products", products)
}

// CreateProduct handles POST /api/products
func (cc *CatalogController) CreateProduct(c echo.Context) error {
	return cc.createNamed(c, "Product", func(name, _ string) (interface{}, error) {
		return cc.catalogs.FindOrCreateProduct(c.Request().Context(), name)
	})
}

// GetProductStages handles GET /api/product-stages; ?product= scopes to a
// product funnel. Stages come back in funnel order.
func (cc *CatalogController) GetProductStages(c echo.Context) error {
	filter := bson.M{}
	if raw := c.QueryParam("product"); raw != "" {
		id, err := parseObjectID(raw, "product")
		if err != nil {
			return serviceError(c, err)
		}
		filter["product_id"] = id
	}

	stages := []models.ProductStage{}
	if err := cc.list(c, "productstages", filter, bson.D{{Key: "order", Value: 1}}, &stages); err != nil {
		return listError(c, "product stages", err)
	}
	return listOK(c, "Product stages", stages)
}

// CreateProductStage handles POST /api/product-stages
func (cc *CatalogController) CreateProductStage(c echo.Context) error {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Product string `json:"product" validate:"required"`
		Order   int    `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name and product are required",
		})
	}

	product, err := parseObjectID(req.Product, "product")
	if err != nil {
		return serviceError(c, err)
	}

	now := time.Now()
	result, err := cc.db.Collection("productstages").InsertOne(c.Request().Context(), models.ProductStage{
		Name:      req.Name,
		Product:   product,
		Order:     req.Order,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		c.Logger().Errorf("creating product stage failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product stage",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product stage created successfully",
		Data:    map[string]interface{}{"id": result.InsertedID},
	})
}

// GetDealStages handles GET /api/deal-stages, in funnel order
func (cc *CatalogController) GetDealStages(c echo.Context) error {
	stages := []models.DealStage{}
	if err := cc.list(c, "dealstages", bson.M{}, bson.D{{Key: "order", Value: 1}}, &stages); err != nil {
		return listError(c, "deal stages", err)
	}
	return listOK(c, "Deal stages", stages)
}

// CreateDealStage handles POST /api/deal-stages
func (cc *CatalogController) CreateDealStage(c echo.Context) error {
	var req struct {
		Name  string `json:"name" validate:"required"`
		Order int    `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name is required",
		})
	}

	id, err := cc.catalogs.FindOrCreateDealStage(c.Request().Context(), req.Name, req.Order)
	if err != nil {
		c.Logger().Errorf("creating deal stage failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create deal stage",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Deal stage created successfully",
		Data:    map[string]interface{}{"id": id},
	})
}

// UpdateLeadType handles PUT /api/lead-types/:id
func (cc *CatalogController) UpdateLeadType(c echo.Context) error {
	return cc.updateNamed(c, "leadtypes", "lead type")
}

// DeleteLeadType handles DELETE /api/lead-types/:id
func (cc *CatalogController) DeleteLeadType(c echo.Context) error {
	return cc.softDelete(c, "leadtypes", "lead type")
}

// UpdateProductStage handles PUT /api/product-stages/:id
func (cc *CatalogController) UpdateProductStage(c echo.Context) error {
	return cc.updateNamed(c, "productstages", "product stage")
}

// DeleteProductStage handles DELETE /api/product-stages/:id
func (cc *CatalogController) DeleteProductStage(c echo.Context) error {
	return cc.softDelete(c, "productstages", "product stage")
}

// UpdateDealStage handles PUT /api/deal-stages/:id
func (cc *CatalogController) UpdateDealStage(c echo.Context) error {
	return cc.updateNamed(c, "dealstages", "deal stage")
}

// DeleteDealStage handles DELETE /api/deal-stages/:id
func (cc *CatalogController) DeleteDealStage(c echo.Context) error {
	return cc.softDelete(c, "dealstages", "deal stage")
}

// updateNamed renames a catalog entry and, when given, reorders it.
func (cc *CatalogController) updateNamed(c echo.Context, collection, what string) error {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		return serviceError(c, err)
	}

	var req struct {
		Name  string `json:"name" validate:"required"`
		Order *int   `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name is required",
		})
	}

	set := bson.M{"name": req.Name, "updated_at": time.Now()}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	result, err := cc.db.Collection(collection).UpdateOne(c.Request().Context(),
		bson.M{"_id": id, "delstatus": false}, bson.M{"$set": set})
	if err != nil {
		c.Logger().Errorf("updating %s failed: %v", what, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update " + what,
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: what + " not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: what + " updated successfully",
	})
}

func (cc *CatalogController) softDelete(c echo.Context, collection, what string) error {
	id, err := parseObjectID(c.Param("id"), "id")
	if err != nil {
		return serviceError(c, err)
	}

	result, err := cc.db.Collection(collection).UpdateOne(c.Request().Context(),
		bson.M{"_id": id, "delstatus": false},
		bson.M{"$set": bson.M{"delstatus": true, "updated_at": time.Now()}})
	if err != nil {
		c.Logger().Errorf("deleting %s failed: %v", what, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete " + what,
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: what + " not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: what + " deleted successfully",
	})
}

func (cc *CatalogController) createNamed(c echo.Context, what string, create func(name, createdBy string) (interface{}, error)) error {
	var req createNamedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name is required",
		})
	}

	id, err := create(req.Name, creatorName(c))
	if err != nil {
		c.Logger().Errorf("creating %s failed: %v", what, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create " + what,
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: what + " created successfully",
		Data:    map[string]interface{}{"id": id},
	})
}

// creatorName records who created a catalog entry, by user id
func creatorName(c echo.Context) string {
	if id, err := utils.GetUserIDFromToken(c); err == nil {
		return id.Hex()
	}
	return ""
}
