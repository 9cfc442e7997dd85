// repositories/commission_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// CommissionRepository persists service commission records.
type CommissionRepository struct {
	collection *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *CommissionRepository {
	return &CommissionRepository{collection: db.Collection("servicecommissions")}
}

func (r *CommissionRepository) Insert(ctx context.Context, sc *models.ServiceCommission) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, sc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceCommission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sc models.ServiceCommission
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "delstatus": false}).Decode(&sc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *CommissionRepository) FindByDeal(ctx context.Context, deal primitive.ObjectID) (*models.ServiceCommission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sc models.ServiceCommission
	err := r.collection.FindOne(ctx, bson.M{"deal_id": deal, "delstatus": false}).Decode(&sc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *CommissionRepository) List(ctx context.Context) ([]models.ServiceCommission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"delstatus": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ServiceCommission{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *CommissionRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CommissionRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, bson.M{"delstatus": true})
}
