// models/lead.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead is a prospective client engagement. selected_users is the visibility
// set: the users allowed to see and act on the lead.
type Lead struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Client        primitive.ObjectID   `json:"client" bson:"client"`
	CreatedBy     primitive.ObjectID   `json:"created_by" bson:"created_by"`
	UpdatedBy     *primitive.ObjectID  `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	SelectedUsers []primitive.ObjectID `json:"selected_users" bson:"selected_users"`
	Pipeline      primitive.ObjectID   `json:"pipeline_id" bson:"pipeline_id"`
	Branch        primitive.ObjectID   `json:"branch" bson:"branch"`
	Product       primitive.ObjectID   `json:"products" bson:"products"`
	ProductStage  primitive.ObjectID   `json:"product_stage" bson:"product_stage"`
	Source        primitive.ObjectID   `json:"source" bson:"source"`
	LeadType      primitive.ObjectID   `json:"lead_type" bson:"lead_type"`
	Description   string               `json:"description,omitempty" bson:"description,omitempty"`
	ActivityLogs  []primitive.ObjectID `json:"activity_logs,omitempty" bson:"activity_logs,omitempty"`
	DelStatus     bool                 `json:"delstatus" bson:"delstatus"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// IsVisibleTo reports whether the user is in the lead's visibility set.
func (l *Lead) IsVisibleTo(userID primitive.ObjectID) bool {
	for _, id := range l.SelectedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateLeadRequest is the payload for POST /api/leads/create-lead.
// Client fields use the phone number as the dedup key.
type CreateLeadRequest struct {
	ClientPhone   string   `json:"clientPhone" validate:"required"`
	ClientName    string   `json:"clientName,omitempty"`
	ClientEmail   string   `json:"clientEmail,omitempty"`
	ProductStage  string   `json:"product_stage" validate:"required"`
	LeadType      string   `json:"lead_type" validate:"required"`
	Pipeline      string   `json:"pipeline" validate:"required"`
	Products      string   `json:"products" validate:"required"`
	Source        string   `json:"source" validate:"required"`
	Branch        string   `json:"branch" validate:"required"`
	Description   string   `json:"description,omitempty"`
	SelectedUsers []string `json:"selected_users,omitempty"`
}

// TransferLeadRequest is the payload for PUT /api/leads/transfer-lead/:id
type TransferLeadRequest struct {
	Pipeline     string `json:"pipeline" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	ProductStage string `json:"product_stage" validate:"required"`
	Products     string `json:"products" validate:"required"`
}

// MoveLeadRequest is the payload for PUT /api/leads/move-lead/:id
type MoveLeadRequest struct {
	Pipeline     string `json:"pipeline" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	ProductStage string `json:"product_stage" validate:"required"`
}

// EditLeadRequest is the payload for PUT /api/leads/edit-lead/:id
type EditLeadRequest struct {
	ClientPhone   string   `json:"clientPhone" validate:"required"`
	ClientName    string   `json:"clientName,omitempty"`
	ClientEmail   string   `json:"clientEmail,omitempty"`
	ProductStage  string   `json:"product_stage" validate:"required"`
	LeadType      string   `json:"lead_type" validate:"required"`
	Pipeline      string   `json:"pipeline" validate:"required"`
	Products      string   `json:"products" validate:"required"`
	Source        string   `json:"source" validate:"required"`
	Branch        string   `json:"branch" validate:"required"`
	Description   string   `json:"description,omitempty"`
	SelectedUsers []string `json:"selected_users,omitempty"`
}

// UpdateProductStageRequest is the payload for PUT /api/leads/update-product-stage/:id
type UpdateProductStageRequest struct {
	NewProductStageID string `json:"newProductStageId" validate:"required"`
}

// NamedRef is a populated reference carrying only the display name.
type NamedRef struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

// UserRef is a populated user reference.
type UserRef struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
}

// ClientRef is a populated client reference.
type ClientRef struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone string             `json:"phone,omitempty" bson:"phone,omitempty"`
}

// PopulatedLead is a lead with its references resolved for read endpoints.
type PopulatedLead struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Client        *ClientRef         `json:"client,omitempty" bson:"client,omitempty"`
	CreatedBy     *UserRef           `json:"created_by,omitempty" bson:"created_by,omitempty"`
	SelectedUsers []UserRef          `json:"selected_users" bson:"selected_users"`
	Pipeline      *NamedRef          `json:"pipeline_id,omitempty" bson:"pipeline_id,omitempty"`
	Branch        *NamedRef          `json:"branch,omitempty" bson:"branch,omitempty"`
	Product       *NamedRef          `json:"products,omitempty" bson:"products,omitempty"`
	ProductStage  *NamedRef          `json:"product_stage,omitempty" bson:"product_stage,omitempty"`
	Source        *NamedRef          `json:"source,omitempty" bson:"source,omitempty"`
	LeadType      *NamedRef          `json:"lead_type,omitempty" bson:"lead_type,omitempty"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// LeadListResponse is the paginated envelope for lead list endpoints.
type LeadListResponse struct {
	Leads       []PopulatedLead `json:"leads"`
	TotalPages  int64           `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}
