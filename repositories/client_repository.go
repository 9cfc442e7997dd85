// repositories/client_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// defaultClientPassword seeds newly auto-created client accounts; clients
// are expected to reset it before first portal login.
const defaultClientPassword = "123"

// ClientRepository deduplicates clients by phone number.
type ClientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{collection: db.Collection("clients")}
}

// FindOrCreateByPhone resolves a client by phone. An existing client has
// its name/email overwritten when new values are provided; a missing one is
// created with a hashed default password. Shared by the lead lifecycle and
// the batch importer.
func (r *ClientRepository) FindOrCreateByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var existing models.Client
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&existing)
	if err == nil {
		set := bson.M{"updatedAt": time.Now()}
		if name != "" {
			set["name"] = name
		}
		if email != "" {
			set["email"] = email
		}
		if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}); err != nil {
			return primitive.NilObjectID, err
		}
		return existing.ID, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultClientPassword), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, err
	}
	now := time.Now()
	client := models.Client{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		// Another request may have created the same phone concurrently; the
		// unique index turns that race into a duplicate-key error and the
		// existing document wins.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&existing); ferr == nil {
				return existing.ID, nil
			}
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByID returns a client without its password hash, or nil when absent.
func (r *ClientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "delstatus": false}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	client.Password = ""
	return &client, nil
}
