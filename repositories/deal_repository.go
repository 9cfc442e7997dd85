// repositories/deal_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/services"
)

// DealRepository persists deals assembled from leads.
type DealRepository struct {
	collection  *mongo.Collection
	commissions *mongo.Collection
}

func NewDealRepository(db *mongo.Database) *DealRepository {
	return &DealRepository{
		collection:  db.Collection("deals"),
		commissions: db.Collection("servicecommissions"),
	}
}

func (r *DealRepository) Insert(ctx context.Context, deal *models.Deal) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, deal)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// LinkCommission points a deal at its commission record.
func (r *DealRepository) LinkCommission(ctx context.Context, deal, commission primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": deal},
		bson.M{"$set": bson.M{"service_commission_id": commission, "updated_at": time.Now()}})
	return err
}

// SetActivityLogs replaces a deal's activity log references.
func (r *DealRepository) SetActivityLogs(ctx context.Context, deal primitive.ObjectID, logs []primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": deal},
		bson.M{"$set": bson.M{"activity_logs": logs, "updated_at": time.Now()}})
	return err
}

// ListPopulated returns all non-deleted deals with display refs resolved.
func (r *DealRepository) ListPopulated(ctx context.Context) ([]models.PopulatedDeal, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	joins := []struct {
		from    string
		local   string
		project bson.M
	}{
		{"clients", "client_id", bson.M{"name": 1, "email": 1}},
		{"users", "created_by", bson.M{"name": 1, "email": 1}},
		{"pipelines", "pipeline_id", bson.M{"name": 1}},
		{"leadtypes", "lead_type", bson.M{"name": 1}},
		{"dealstages", "deal_stage", bson.M{"name": 1}},
		{"sources", "source_id", bson.M{"name": 1}},
		{"products", "products", bson.M{"name": 1}},
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"delstatus": false}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}
	for _, j := range joins {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         j.from,
				"localField":   j.local,
				"foreignField": "_id",
				"as":           j.local,
				"pipeline":     []bson.M{{"$project": j.project}},
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$" + j.local,
				"preserveNullAndEmptyArrays": true,
			}}},
		)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	deals := []models.PopulatedDeal{}
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// ListDealCommissionRefs feeds the commission reconciliation scan.
func (r *DealRepository) ListDealCommissionRefs(ctx context.Context) ([]services.DealCommissionRef, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"delstatus": false, "is_transfer": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := []services.DealCommissionRef{}
	for cursor.Next(ctx) {
		var deal models.Deal
		if err := cursor.Decode(&deal); err != nil {
			return nil, err
		}
		refs = append(refs, services.DealCommissionRef{
			DealID:        deal.ID,
			Client:        deal.Client,
			ContractStage: deal.ContractStage,
			Commission:    deal.ServiceCommission,
		})
	}
	return refs, cursor.Err()
}

// CommissionExists reports whether a commission document is present.
func (r *DealRepository) CommissionExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := r.commissions.CountDocuments(ctx, bson.M{"_id": id, "delstatus": false})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
