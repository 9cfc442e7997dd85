// controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
)

// UserController manages CRM user accounts. All writes go through the
// repository so the role cache stays consistent.
type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// GetUsers handles GET /api/users
func (uc *UserController) GetUsers(c echo.Context) error {
	users, err := uc.users.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("listing users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve users",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// GetUser handles GET /api/users/:id
func (uc *UserController) GetUser(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "user id")
	if err != nil {
		return serviceError(c, err)
	}

	user, err := uc.users.FindByID(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("loading user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve user",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User retrieved successfully",
		Data:    user,
	})
}

// CreateUser handles POST /api/users
func (uc *UserController) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "name, email and role are required",
		})
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "unknown role: " + req.Role,
		})
	}

	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "password is required",
		})
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Logger().Errorf("hashing password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		Verified: true,
	}
	for _, raw := range req.Pipelines {
		id, err := parseObjectID(raw, "pipelines")
		if err != nil {
			return serviceError(c, err)
		}
		user.Pipelines = append(user.Pipelines, id)
	}
	if req.Branch != "" {
		id, err := parseObjectID(req.Branch, "branch")
		if err != nil {
			return serviceError(c, err)
		}
		user.Branch = &id
	}

	existing, err := uc.users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		c.Logger().Errorf("email lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A user with this email already exists",
		})
	}

	id, err := uc.users.Insert(c.Request().Context(), user)
	if err != nil {
		c.Logger().Errorf("creating user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}
	user.ID = id
	user.Password = ""

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Data:    user,
	})
}

// UpdateUser handles PUT /api/users/:id
func (uc *UserController) UpdateUser(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "user id")
	if err != nil {
		return serviceError(c, err)
	}

	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Role != "" {
		role, ok := models.ParseRole(req.Role)
		if !ok {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "unknown role: " + req.Role,
			})
		}
		fields["role"] = role
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.Logger().Errorf("hashing password failed: %v", err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to update user",
			})
		}
		fields["password"] = string(hashed)
	}
	if req.Pipelines != nil {
		pipelines := make([]primitive.ObjectID, 0, len(req.Pipelines))
		for _, raw := range req.Pipelines {
			pid, err := parseObjectID(raw, "pipelines")
			if err != nil {
				return serviceError(c, err)
			}
			pipelines = append(pipelines, pid)
		}
		fields["pipelines"] = pipelines
	}
	if req.Branch != "" {
		bid, err := parseObjectID(req.Branch, "branch")
		if err != nil {
			return serviceError(c, err)
		}
		fields["branch"] = bid
	}

	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No fields to update",
		})
	}

	if err := uc.users.Update(c.Request().Context(), id, fields); err != nil {
		c.Logger().Errorf("updating user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update user",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User updated successfully",
	})
}

// DeleteUser handles DELETE /api/users/:id (soft delete)
func (uc *UserController) DeleteUser(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "user id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := uc.users.SoftDelete(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("deleting user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete user",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User deleted successfully",
	})
}
