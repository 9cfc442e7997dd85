// repositories/user_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

const queryTimeout = 10 * time.Second

// UserRepository is the Mongo-backed user directory. Role lookups without a
// pipeline scope go through the Redis role cache when one is configured.
type UserRepository struct {
	collection *mongo.Collection
	cache      *RoleCache
}

func NewUserRepository(db *mongo.Database, cache *RoleCache) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

// FindIDsByRoles returns ids of all non-deleted users holding any of the
// given roles.
func (r *UserRepository) FindIDsByRoles(ctx context.Context, roles []models.Role) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var out []primitive.ObjectID
	var missed []models.Role
	for _, role := range roles {
		if ids, ok := r.cache.Get(ctx, role); ok {
			out = append(out, ids...)
		} else {
			missed = append(missed, role)
		}
	}

	for _, role := range missed {
		ids, err := r.findIDs(ctx, bson.M{"role": role, "delstatus": false})
		if err != nil {
			return nil, err
		}
		r.cache.Put(ctx, role, ids)
		out = append(out, ids...)
	}
	return out, nil
}

// FindIDsByRolesInPipeline returns ids of non-deleted users holding any of
// the given roles within the pipeline; a nil branch matches any branch.
func (r *UserRepository) FindIDsByRolesInPipeline(ctx context.Context, roles []models.Role, pipeline primitive.ObjectID, branch *primitive.ObjectID) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"role":      bson.M{"$in": roles},
		"pipelines": pipeline,
		"delstatus": false,
	}
	if branch != nil {
		filter["branch"] = *branch
	}
	return r.findIDs(ctx, filter)
}

func (r *UserRepository) findIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []primitive.ObjectID{}
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// FindByEmail returns the user with the given email, or nil when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email, "delstatus": false}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user by id, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "delstatus": false}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertByEmail creates or replaces the user keyed by email and returns its
// id. Used by both the live API and the batch importer so repeated imports
// never duplicate users.
func (r *UserRepository) UpsertByEmail(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":      user.Name,
			"password":  user.Password,
			"image":     user.Image,
			"role":      user.Role,
			"pipelines": user.Pipelines,
			"branch":    user.Branch,
			"verified":  user.Verified,
			"delstatus": user.DelStatus,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"email":     user.Email,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&updated)
	if err != nil {
		return primitive.NilObjectID, err
	}

	r.cache.Invalidate(ctx, updated.Role, user.Role)
	return updated.ID, nil
}

// Insert creates a user and invalidates the role cache for its role.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.cache.Invalidate(ctx, user.Role)
	return result.InsertedID.(primitive.ObjectID), nil
}

// Update applies the given fields to a user. The previous and new roles are
// both invalidated in the cache.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var before models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": fields, "$currentDate": bson.M{"updatedAt": true}}).Decode(&before)
	if err != nil {
		return err
	}

	roles := []models.Role{before.Role}
	if newRole, ok := fields["role"].(models.Role); ok {
		roles = append(roles, newRole)
	}
	r.cache.Invalidate(ctx, roles...)
	return nil
}

// SoftDelete flags a user deleted and invalidates its role.
func (r *UserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, bson.M{"delstatus": true})
}

// List returns all non-deleted users without their password hashes.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"delstatus": false},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
