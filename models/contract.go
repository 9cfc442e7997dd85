// models/contract.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contract is the multi-product variant of a deal: a signed agreement that
// may span several products and sources.
type Contract struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	IsTransfer        bool                 `json:"is_transfer" bson:"is_transfer"`
	Client            primitive.ObjectID   `json:"client_id" bson:"client_id"`
	LeadType          primitive.ObjectID   `json:"lead_type" bson:"lead_type"`
	Pipeline          primitive.ObjectID   `json:"pipeline_id" bson:"pipeline_id"`
	Sources           []primitive.ObjectID `json:"source_id" bson:"source_id"`
	Products          []primitive.ObjectID `json:"products" bson:"products"`
	ContractStage     string               `json:"contract_stage" bson:"contract_stage"`
	Labels            []string             `json:"labels" bson:"labels"`
	Status            string               `json:"status" bson:"status"`
	CreatedBy         primitive.ObjectID   `json:"created_by" bson:"created_by"`
	Lead              *primitive.ObjectID  `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	SelectedUsers     []primitive.ObjectID `json:"selected_users" bson:"selected_users"`
	IsActive          bool                 `json:"is_active" bson:"is_active"`
	ServiceCommission *primitive.ObjectID  `json:"service_commission_id,omitempty" bson:"service_commission_id,omitempty"`
	Date              time.Time            `json:"date" bson:"date"`
	DelStatus         bool                 `json:"delstatus" bson:"delstatus"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at" bson:"updated_at"`
}

// UpdateContractRequest replaces the mutable fields of a contract.
type UpdateContractRequest struct {
	IsTransfer    *bool    `json:"is_transfer,omitempty"`
	ContractStage string   `json:"contract_stage,omitempty"`
	Labels        []string `json:"labels,omitempty"`
	Status        string   `json:"status,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	SelectedUsers []string `json:"selected_users,omitempty"`
}
