// models/catalog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog entities are the small lookup collections a lead or deal points
// into. Each one is keyed by its name for dedup-or-create.

// Pipeline is a named sales funnel.
type Pipeline struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedBy string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Branch is a physical office location.
type Branch struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// LeadType categorizes where business comes from (e.g. Marketing, Telesales).
type LeadType struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedBy string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Source is a lead acquisition channel, owned by a lead type.
type Source struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	LeadType  primitive.ObjectID `json:"lead_type_id" bson:"lead_type_id"`
	CreatedBy string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Product is a sellable service line.
type Product struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductStage is one step of a product's funnel, ordered within the product.
type ProductStage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Product   primitive.ObjectID `json:"product_id" bson:"product_id"`
	Order     int                `json:"order" bson:"order"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// DealStage is one step of the deal funnel.
type DealStage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedBy string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Order     int                `json:"order" bson:"order"`
	DelStatus bool               `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
