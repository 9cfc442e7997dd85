// repositories/import_store.go
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// ImportStore bundles the repositories the legacy importer writes through.
// It satisfies importer.AssemblerStore.
type ImportStore struct {
	Catalogs    *CatalogRepository
	Clients     *ClientRepository
	Users       *UserRepository
	Leads       *LeadRepository
	Deals       *DealRepository
	Commissions *CommissionRepository
	Activity    *ActivityLogRepository
}

func NewImportStore(db *mongo.Database) *ImportStore {
	return &ImportStore{
		Catalogs:    NewCatalogRepository(db),
		Clients:     NewClientRepository(db),
		Users:       NewUserRepository(db, nil),
		Leads:       NewLeadRepository(db),
		Deals:       NewDealRepository(db),
		Commissions: NewCommissionRepository(db),
		Activity:    NewActivityLogRepository(db),
	}
}

func (s *ImportStore) FindOrCreatePipeline(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreatePipeline(ctx, name, createdBy)
}

func (s *ImportStore) FindOrCreateLeadType(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreateLeadType(ctx, name, createdBy)
}

func (s *ImportStore) FindOrCreateSource(ctx context.Context, name string, leadType primitive.ObjectID, createdBy string) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreateSource(ctx, name, leadType, createdBy)
}

func (s *ImportStore) FindOrCreateProduct(ctx context.Context, name string) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreateProduct(ctx, name)
}

func (s *ImportStore) FindOrCreateDealStage(ctx context.Context, name string, order int) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreateDealStage(ctx, name, order)
}

func (s *ImportStore) FindOrCreateBranch(ctx context.Context, name string) (primitive.ObjectID, error) {
	return s.Catalogs.FindOrCreateBranch(ctx, name)
}

func (s *ImportStore) FindOrCreateClientByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error) {
	return s.Clients.FindOrCreateByPhone(ctx, phone, name, email)
}

func (s *ImportStore) UpsertUserByEmail(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return s.Users.UpsertByEmail(ctx, user)
}

func (s *ImportStore) FindLeadByClient(ctx context.Context, client primitive.ObjectID) (*models.Lead, error) {
	return s.Leads.FindByClient(ctx, client)
}

func (s *ImportStore) InsertDeal(ctx context.Context, deal *models.Deal) (primitive.ObjectID, error) {
	return s.Deals.Insert(ctx, deal)
}

func (s *ImportStore) InsertCommission(ctx context.Context, sc *models.ServiceCommission) (primitive.ObjectID, error) {
	return s.Commissions.Insert(ctx, sc)
}

func (s *ImportStore) LinkDealCommission(ctx context.Context, deal, commission primitive.ObjectID) error {
	return s.Deals.LinkCommission(ctx, deal, commission)
}

func (s *ImportStore) AppendActivityLog(ctx context.Context, entry *models.ActivityLog) (primitive.ObjectID, error) {
	return s.Activity.Append(ctx, entry)
}

func (s *ImportStore) SetDealActivityLogs(ctx context.Context, deal primitive.ObjectID, logs []primitive.ObjectID) error {
	return s.Deals.SetActivityLogs(ctx, deal, logs)
}
