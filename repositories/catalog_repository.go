// repositories/catalog_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository owns the lookup collections (pipelines, branches,
// sources, lead types, products, product stages, deal stages). One generic
// find-or-create keyed by name backs all of them, replacing the three
// near-duplicate scripts the legacy system carried.
type CatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// findOrCreateByName upserts a document into the collection keyed by its
// name and returns its id. extra fields are only written on insert.
func (r *CatalogRepository) findOrCreateByName(ctx context.Context, collection, name string, extra bson.M) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now()
	setOnInsert := bson.M{
		"name":       name,
		"delstatus":  false,
		"created_at": now,
		"updated_at": now,
	}
	for k, v := range extra {
		setOnInsert[k] = v
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.db.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": setOnInsert},
		opts,
	).Decode(&doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return doc.ID, nil
}

func (r *CatalogRepository) FindOrCreatePipeline(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "pipelines", name, bson.M{"created_by": createdBy})
}

func (r *CatalogRepository) FindOrCreateLeadType(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "leadtypes", name, bson.M{"created_by": createdBy})
}

func (r *CatalogRepository) FindOrCreateSource(ctx context.Context, name string, leadType primitive.ObjectID, createdBy string) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "sources", name, bson.M{"lead_type_id": leadType, "created_by": createdBy})
}

func (r *CatalogRepository) FindOrCreateProduct(ctx context.Context, name string) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "products", name, nil)
}

func (r *CatalogRepository) FindOrCreateDealStage(ctx context.Context, name string, order int) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "dealstages", name, bson.M{"order": order})
}

func (r *CatalogRepository) FindOrCreateBranch(ctx context.Context, name string) (primitive.ObjectID, error) {
	return r.findOrCreateByName(ctx, "branches", name, nil)
}

func (r *CatalogRepository) exists(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := r.db.Collection(collection).CountDocuments(ctx, bson.M{"_id": id, "delstatus": false})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogRepository) ProductStageExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, "productstages", id)
}

func (r *CatalogRepository) LeadTypeExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, "leadtypes", id)
}

func (r *CatalogRepository) SourceExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, "sources", id)
}
