package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityLog is an append-only record of an action taken on a deal or
// lead. The remark holds a JSON-encoded payload.
type ActivityLog struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID  `json:"user_id" bson:"user_id"`
	Deal      *primitive.ObjectID `json:"deal_id,omitempty" bson:"deal_id,omitempty"`
	Lead      *primitive.ObjectID `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	LogType   string              `json:"log_type" bson:"log_type"`
	Remark    string              `json:"remark" bson:"remark"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}
