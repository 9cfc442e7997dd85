// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Email       string               `json:"email" bson:"email"`
	Password    string               `json:"password,omitempty" bson:"password"`
	Image       string               `json:"image,omitempty" bson:"image,omitempty"`
	Role        Role                 `json:"role" bson:"role"`
	Pipelines   []primitive.ObjectID `json:"pipelines,omitempty" bson:"pipelines,omitempty"`
	Branch      *primitive.ObjectID  `json:"branch,omitempty" bson:"branch,omitempty"`
	Products    *primitive.ObjectID  `json:"products,omitempty" bson:"products,omitempty"`
	Permissions []string             `json:"permissions,omitempty" bson:"permissions,omitempty"`
	Verified    bool                 `json:"verified" bson:"verified"`
	DelStatus   bool                 `json:"delstatus" bson:"delstatus"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// InPipeline reports whether the user is associated with the given pipeline.
func (u *User) InPipeline(pipeline primitive.ObjectID) bool {
	for _, p := range u.Pipelines {
		if p == pipeline {
			return true
		}
	}
	return false
}

// LoginRequest is the payload for /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the payload for creating or updating a user
type CreateUserRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password,omitempty"`
	Role      string   `json:"role" validate:"required"`
	Pipelines []string `json:"pipelines,omitempty"`
	Branch    string   `json:"branch,omitempty"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
