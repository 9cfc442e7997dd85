// controllers/contract_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// ContractController manages signed multi-product agreements
type ContractController struct {
	db *mongo.Database
}

func NewContractController(db *mongo.Database) *ContractController {
	return &ContractController{db: db}
}

// GetContracts handles GET /api/contracts
func (cc *ContractController) GetContracts(c echo.Context) error {
	ctx := c.Request().Context()

	cursor, err := cc.db.Collection("contracts").Find(ctx, bson.M{"delstatus": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.Logger().Errorf("listing contracts failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve contracts",
		})
	}
	defer cursor.Close(ctx)

	contracts := []models.Contract{}
	if err := cursor.All(ctx, &contracts); err != nil {
		c.Logger().Errorf("decoding contracts failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve contracts",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Contracts retrieved successfully",
		Data:    contracts,
	})
}

// GetContract handles GET /api/contracts/:id
func (cc *ContractController) GetContract(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "contract id")
	if err != nil {
		return serviceError(c, err)
	}

	var contract models.Contract
	err = cc.db.Collection("contracts").FindOne(c.Request().Context(),
		bson.M{"_id": id, "delstatus": false}).Decode(&contract)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Contract not found",
		})
	}
	if err != nil {
		c.Logger().Errorf("loading contract failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve contract",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Contract retrieved successfully",
		Data:    contract,
	})
}

// UpdateContract handles PUT /api/contracts/:id
func (cc *ContractController) UpdateContract(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "contract id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.UpdateContractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	update := bson.M{"updated_at": time.Now()}
	if req.IsTransfer != nil {
		update["is_transfer"] = *req.IsTransfer
	}
	if req.ContractStage != "" {
		update["contract_stage"] = req.ContractStage
	}
	if req.Labels != nil {
		update["labels"] = req.Labels
	}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.SelectedUsers != nil {
		selected, err := parseObjectIDs(req.SelectedUsers)
		if err != nil {
			return serviceError(c, err)
		}
		update["selected_users"] = selected
	}

	result, err := cc.db.Collection("contracts").UpdateOne(c.Request().Context(),
		bson.M{"_id": id, "delstatus": false}, bson.M{"$set": update})
	if err != nil {
		c.Logger().Errorf("updating contract failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update contract",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Contract not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Contract updated successfully",
	})
}

// DeleteContract handles DELETE /api/contracts/:id (soft delete)
func (cc *ContractController) DeleteContract(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "contract id")
	if err != nil {
		return serviceError(c, err)
	}

	result, err := cc.db.Collection("contracts").UpdateOne(c.Request().Context(),
		bson.M{"_id": id}, bson.M{"$set": bson.M{"delstatus": true, "updated_at": time.Now()}})
	if err != nil {
		c.Logger().Errorf("deleting contract failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete contract",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Contract not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Contract deleted successfully",
	})
}

// GetContractCommission handles GET /api/contracts/:id/service-commission
func (cc *ContractController) GetContractCommission(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "contract id")
	if err != nil {
		return serviceError(c, err)
	}

	var contract models.Contract
	err = cc.db.Collection("contracts").FindOne(c.Request().Context(),
		bson.M{"_id": id, "delstatus": false}).Decode(&contract)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Contract not found",
		})
	}
	if err != nil {
		c.Logger().Errorf("loading contract failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve contract",
		})
	}

	if contract.ServiceCommission == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Contract has no service commission",
		})
	}

	var commission models.ServiceCommission
	err = cc.db.Collection("servicecommissions").FindOne(c.Request().Context(),
		bson.M{"_id": *contract.ServiceCommission, "delstatus": false}).Decode(&commission)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Service commission not found",
		})
	}
	if err != nil {
		c.Logger().Errorf("loading commission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve service commission",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Service commission retrieved successfully",
		Data:    commission,
	})
}
