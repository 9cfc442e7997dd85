// repositories/lead_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// LeadRepository persists leads and serves the populated read paths.
type LeadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{collection: db.Collection("leads")}
}

func (r *LeadRepository) Insert(ctx context.Context, lead *models.Lead) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID returns the raw lead document, or nil when absent or deleted.
func (r *LeadRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var lead models.Lead
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "delstatus": false}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// Save replaces the lead document by id.
func (r *LeadRepository) Save(ctx context.Context, lead *models.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lead.ID}, lead)
	return err
}

// FindByClient returns the first lead referencing the client, or nil.
func (r *LeadRepository) FindByClient(ctx context.Context, client primitive.ObjectID) (*models.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var lead models.Lead
	err := r.collection.FindOne(ctx, bson.M{"client": client, "delstatus": false}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// SoftDelete flags a lead deleted; leads are never physically removed.
func (r *LeadRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"delstatus": true, "updated_at": time.Now()}})
	return err
}

// lookupStages joins the lead's references into display refs, the
// aggregation equivalent of the old populate chains.
func lookupStages() mongo.Pipeline {
	joins := []struct {
		from    string
		local   string
		project bson.M
	}{
		{"clients", "client", bson.M{"name": 1, "email": 1, "phone": 1}},
		{"users", "created_by", bson.M{"name": 1, "email": 1}},
		{"pipelines", "pipeline_id", bson.M{"name": 1}},
		{"branches", "branch", bson.M{"name": 1}},
		{"products", "products", bson.M{"name": 1}},
		{"productstages", "product_stage", bson.M{"name": 1}},
		{"sources", "source", bson.M{"name": 1}},
		{"leadtypes", "lead_type", bson.M{"name": 1}},
	}

	var stages mongo.Pipeline
	for _, j := range joins {
		stages = append(stages,
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
	stages = append(stages, bson.D{{Key: "$lookup", Value: bson.M{
		"from":         "users",
		"localField":   "selected_users",
		"foreignField": "_id",
		"as":           "selected_users",
		"pipeline":     []bson.M{{"$project": bson.M{"name": 1, "email": 1}}},
	}}})
	return stages
}

// GetPopulated returns one lead with its references resolved.
func (r *LeadRepository) GetPopulated(ctx context.Context, id primitive.ObjectID) (*models.PopulatedLead, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id, "delstatus": false}}},
	}, lookupStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.PopulatedLead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// ListForUser returns the leads whose visibility set contains the user,
// newest first, paginated.
func (r *LeadRepository) ListForUser(ctx context.Context, user primitive.ObjectID, page, limit int) ([]models.PopulatedLead, int64, error) {
	return r.list(ctx, bson.M{"selected_users": user, "delstatus": false}, page, limit)
}

// ListAll returns leads optionally filtered by pipeline and branch.
func (r *LeadRepository) ListAll(ctx context.Context, pipeline, branch *primitive.ObjectID, page, limit int) ([]models.PopulatedLead, int64, error) {
	filter := bson.M{"delstatus": false}
	if pipeline != nil {
		filter["pipeline_id"] = *pipeline
	}
	if branch != nil {
		filter["branch"] = *branch
	}
	return r.list(ctx, filter, page, limit)
}

func (r *LeadRepository) list(ctx context.Context, filter bson.M, page, limit int) ([]models.PopulatedLead, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1000
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := append(mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	}, lookupStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	leads := []models.PopulatedLead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, 0, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return leads, totalPages, nil
}
