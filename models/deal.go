// models/deal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deal statuses
const (
	DealStatusActive   = "Active"
	DealStatusInactive = "Inactive"
)

// ContractStageSigned is the legacy sentinel meaning the deal was already
// fully signed and handed over; such records are excluded from import.
const ContractStageSigned = "cm_signed"

// Deal is a lead that has progressed to a commercial agreement. Its
// visibility set is copied from the lead at assembly time.
type Deal struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	IsTransfer        bool                 `json:"is_transfer" bson:"is_transfer"`
	Client            primitive.ObjectID   `json:"client_id" bson:"client_id"`
	LeadType          primitive.ObjectID   `json:"lead_type" bson:"lead_type"`
	Pipeline          primitive.ObjectID   `json:"pipeline_id" bson:"pipeline_id"`
	Source            primitive.ObjectID   `json:"source_id" bson:"source_id"`
	Product           primitive.ObjectID   `json:"products" bson:"products"`
	ContractStage     string               `json:"contract_stage" bson:"contract_stage"`
	DealStage         *primitive.ObjectID  `json:"deal_stage,omitempty" bson:"deal_stage,omitempty"`
	Labels            []string             `json:"labels" bson:"labels"`
	Status            string               `json:"status" bson:"status"`
	CreatedBy         primitive.ObjectID   `json:"created_by" bson:"created_by"`
	Lead              *primitive.ObjectID  `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	Contract          *primitive.ObjectID  `json:"contract_id,omitempty" bson:"contract_id,omitempty"`
	SelectedUsers     []primitive.ObjectID `json:"selected_users" bson:"selected_users"`
	IsActive          bool                 `json:"is_active" bson:"is_active"`
	ServiceCommission *primitive.ObjectID  `json:"service_commission_id,omitempty" bson:"service_commission_id,omitempty"`
	ActivityLogs      []primitive.ObjectID `json:"activity_logs" bson:"activity_logs"`
	Date              time.Time            `json:"date" bson:"date"`
	DelStatus         bool                 `json:"delstatus" bson:"delstatus"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at" bson:"updated_at"`
}

// PopulatedDeal is a deal with display references resolved.
type PopulatedDeal struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Client        *ClientRef         `json:"client_id,omitempty" bson:"client_id,omitempty"`
	CreatedBy     *UserRef           `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Pipeline      *NamedRef          `json:"pipeline_id,omitempty" bson:"pipeline_id,omitempty"`
	LeadType      *NamedRef          `json:"lead_type,omitempty" bson:"lead_type,omitempty"`
	DealStage     *NamedRef          `json:"deal_stage,omitempty" bson:"deal_stage,omitempty"`
	Source        *NamedRef          `json:"source_id,omitempty" bson:"source_id,omitempty"`
	Product       *NamedRef          `json:"products,omitempty" bson:"products,omitempty"`
	ContractStage string             `json:"contract_stage" bson:"contract_stage"`
	Labels        []string           `json:"labels" bson:"labels"`
	Status        string             `json:"status" bson:"status"`
	IsActive      bool               `json:"is_active" bson:"is_active"`
	Date          time.Time          `json:"date" bson:"date"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
