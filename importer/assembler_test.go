package importer

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// memStore is an in-memory AssemblerStore keyed by the same natural keys the
// Mongo implementation uses.
type memStore struct {
	pipelines   map[string]primitive.ObjectID
	leadTypes   map[string]primitive.ObjectID
	sources     map[string]primitive.ObjectID
	products    map[string]primitive.ObjectID
	dealStages  map[string]primitive.ObjectID
	branches    map[string]primitive.ObjectID
	clients     map[string]primitive.ObjectID
	usersByMail map[string]primitive.ObjectID
	leads       map[primitive.ObjectID]*models.Lead

	deals       []*models.Deal
	commissions []*models.ServiceCommission
	activities  []*models.ActivityLog
}

func newMemStore() *memStore {
	return &memStore{
		pipelines:   make(map[string]primitive.ObjectID),
		leadTypes:   make(map[string]primitive.ObjectID),
		sources:     make(map[string]primitive.ObjectID),
		products:    make(map[string]primitive.ObjectID),
		dealStages:  make(map[string]primitive.ObjectID),
		branches:    make(map[string]primitive.ObjectID),
		clients:     make(map[string]primitive.ObjectID),
		usersByMail: make(map[string]primitive.ObjectID),
		leads:       make(map[primitive.ObjectID]*models.Lead),
	}
}

func upsert(m map[string]primitive.ObjectID, key string) primitive.ObjectID {
	if id, ok := m[key]; ok {
		return id
	}
	id := primitive.NewObjectID()
	m[key] = id
	return id
}

func (s *memStore) FindOrCreatePipeline(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return upsert(s.pipelines, name), nil
}

func (s *memStore) FindOrCreateLeadType(ctx context.Context, name, createdBy string) (primitive.ObjectID, error) {
	return upsert(s.leadTypes, name), nil
}

func (s *memStore) FindOrCreateSource(ctx context.Context, name string, leadType primitive.ObjectID, createdBy string) (primitive.ObjectID, error) {
	return upsert(s.sources, name), nil
}

func (s *memStore) FindOrCreateProduct(ctx context.Context, name string) (primitive.ObjectID, error) {
	return upsert(s.products, name), nil
}

func (s *memStore) FindOrCreateDealStage(ctx context.Context, name string, order int) (primitive.ObjectID, error) {
	return upsert(s.dealStages, name), nil
}

func (s *memStore) FindOrCreateBranch(ctx context.Context, name string) (primitive.ObjectID, error) {
	return upsert(s.branches, name), nil
}

func (s *memStore) FindOrCreateClientByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error) {
	return upsert(s.clients, phone), nil
}

func (s *memStore) UpsertUserByEmail(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return upsert(s.usersByMail, user.Email), nil
}

func (s *memStore) addLead(client primitive.ObjectID) *models.Lead {
	lead := &models.Lead{
		ID:            primitive.NewObjectID(),
		Client:        client,
		SelectedUsers: []primitive.ObjectID{primitive.NewObjectID()},
	}
	s.leads[client] = lead
	return lead
}

func (s *memStore) FindLeadByClient(ctx context.Context, client primitive.ObjectID) (*models.Lead, error) {
	return s.leads[client], nil
}

func (s *memStore) InsertDeal(ctx context.Context, deal *models.Deal) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	deal.ID = id
	s.deals = append(s.deals, deal)
	return id, nil
}

func (s *memStore) InsertCommission(ctx context.Context, sc *models.ServiceCommission) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	sc.ID = id
	s.commissions = append(s.commissions, sc)
	return id, nil
}

func (s *memStore) LinkDealCommission(ctx context.Context, deal, commission primitive.ObjectID) error {
	for _, d := range s.deals {
		if d.ID == deal {
			c := commission
			d.ServiceCommission = &c
		}
	}
	return nil
}

func (s *memStore) AppendActivityLog(ctx context.Context, entry *models.ActivityLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	s.activities = append(s.activities, entry)
	return id, nil
}

func (s *memStore) SetDealActivityLogs(ctx context.Context, deal primitive.ObjectID, logs []primitive.ObjectID) error {
	for _, d := range s.deals {
		if d.ID == deal {
			d.ActivityLogs = logs
		}
	}
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sampleData(store *memStore) *LegacyData {
	// Client 1 has a lead already; client 2 does not.
	clientID, _ := store.FindOrCreateClientByPhone(context.Background(), "0501111111", "Client One", "one@example.com")
	store.addLead(clientID)

	return &LegacyData{
		Clients: []LegacyClient{
			{ID: 1, Name: "Client One", Email: "one@example.com", Phone: "0501111111"},
			{ID: 2, Name: "Client Two", Email: "two@example.com", Phone: "0502222222"},
		},
		Users: []LegacyUser{
			{ID: 10, Name: "Agent A", Email: "agent@example.com", Designation: "Sales Executive", Pipeline: 100, Branch: "Dubai", IsEmailVerified: "1"},
			{ID: 11, Name: "Manager M", Email: "manager@example.com", Designation: "Manager", Pipeline: 100, Branch: ""},
		},
		Pipelines: []LegacyPipeline{{ID: 100, Name: "Business Banking"}},
		LeadTypes: []LegacyLeadType{{ID: 200, Name: "Marketing"}},
		Sources:   []LegacySource{{ID: 300, Name: "Facebook", LeadTypeID: 200}},
		Products:  []LegacyProduct{{ID: 400, Name: "Business Loan"}},
		Labels:    []LegacyLabel{{ID: 500, Name: "Hot"}},
		DealStages: []LegacyDealStage{
			{ID: 600, Name: "Underprocess", Order: 1},
		},
		Deals: []LegacyDeal{
			{
				ID: 1000, ClientID: 1, CreatedBy: 10,
				LeadType: 200, PipelineID: 100, Sources: 300, Products: 400,
				ContractStage: "cm_request", Labels: "500,999",
				Status: "Active", IsActive: "1",
				Date: "2023-05-01", CreatedAt: "2023-05-01 10:00:00", UpdatedAt: "2023-05-02 10:00:00",
			},
		},
		ServiceCommissions: []LegacyServiceCommission{
			{
				ID: 2000, DealID: 1000,
				FinanceAmount:        "150000",
				WithVATCommission:    "5250.50",
				WithoutVATCommission: "5000",
				SalesAgent:           10,
				SalesAgentCommission: "2500",
				HODSale:              999, // unknown user, slot must stay empty
				HODSaleCommission:    "500",
			},
		},
		DealActivities: []LegacyDealActivity{
			{ID: 3000, DealID: 1000, UserID: 10, LogType: "created", Remark: []byte(`"deal created"`)},
			{ID: 3001, DealID: 9999, UserID: 10, LogType: "created", Remark: []byte(`"other deal"`)},
		},
	}
}

func TestAssemblerRun(t *testing.T) {
	store := newMemStore()
	data := sampleData(store)

	report, err := NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, report.DealsTotal)
	assert.Equal(t, 1, report.DealsCreated)
	assert.Equal(t, 0, report.SkippedSigned)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.MissingCommission)
	assert.Equal(t, 1, report.ActivityLogs)
	assert.NotEmpty(t, report.RunID)

	require.Len(t, store.deals, 1)
	deal := store.deals[0]
	assert.Equal(t, store.pipelines["Business Banking"], deal.Pipeline)
	assert.Equal(t, store.clients["0501111111"], deal.Client)
	assert.Equal(t, []string{"Hot", "Unknown"}, deal.Labels, "unresolved label ids render as Unknown")
	assert.True(t, deal.IsActive)
	assert.False(t, deal.IsTransfer)
	require.NotNil(t, deal.Lead)
	assert.Equal(t, store.leads[deal.Client].SelectedUsers, deal.SelectedUsers, "visibility is copied from the lead")
	require.NotNil(t, deal.ServiceCommission)

	require.Len(t, store.commissions, 1)
	sc := store.commissions[0]
	assert.Equal(t, 150000.0, sc.FinanceAmount)
	assert.Equal(t, 5250.50, sc.WithVATCommission)
	assert.Equal(t, 2500.0, sc.SalesAgentCommission)
	require.NotNil(t, sc.SalesAgent)
	assert.Equal(t, store.usersByMail["agent@example.com"], *sc.SalesAgent)
	assert.Nil(t, sc.HODSale, "unknown slot user leaves the slot empty")
	assert.Equal(t, 500.0, sc.HODSaleCommission, "the amount is kept even when the slot user is unknown")

	// Only the activity belonging to this deal is attached.
	require.Len(t, store.activities, 1)
	assert.Equal(t, "created", store.activities[0].LogType)
	assert.Len(t, deal.ActivityLogs, 1)
}

func TestAssemblerSkipsSignedDeals(t *testing.T) {
	store := newMemStore()
	data := sampleData(store)
	data.Deals[0].ContractStage = models.ContractStageSigned

	report, err := NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedSigned)
	assert.Equal(t, 0, report.DealsCreated)
	assert.Empty(t, store.deals)
	assert.Empty(t, store.commissions)
}

func TestAssemblerMissingCommissionFlagged(t *testing.T) {
	store := newMemStore()
	data := sampleData(store)
	data.ServiceCommissions = nil

	report, err := NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 1, report.DealsCreated, "a missing commission never blocks the deal")
	assert.Equal(t, 1, report.MissingCommission)
	assert.Equal(t, []int64{1000}, report.MissingCommissionDeals)
	require.Len(t, store.deals, 1)
	assert.Nil(t, store.deals[0].ServiceCommission)
}

func TestAssemblerFailedRecordDoesNotAbort(t *testing.T) {
	store := newMemStore()
	data := sampleData(store)

	// Client 2 has no lead, so this deal fails; the valid one still lands.
	data.Deals = append([]LegacyDeal{{
		ID: 1001, ClientID: 2, CreatedBy: 10,
		LeadType: 200, PipelineID: 100, Sources: 300, Products: 400,
		ContractStage: "cm_request", Status: "Active", IsActive: "1",
	}}, data.Deals...)

	report, err := NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.DealsTotal)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.DealsCreated)
}

func TestAssemblerIdempotentCatalogs(t *testing.T) {
	store := newMemStore()
	data := sampleData(store)

	_, err := NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)
	_, err = NewAssembler(store, quietLogger()).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Len(t, store.pipelines, 1, "re-running must not duplicate pipelines")
	assert.Len(t, store.leadTypes, 1)
	assert.Len(t, store.sources, 1)
	assert.Len(t, store.products, 1)
	assert.Len(t, store.clients, 1)
	assert.Len(t, store.usersByMail, 1)
}

func TestNormalizeLegacyRole(t *testing.T) {
	assert.Equal(t, models.RoleCEO, NormalizeLegacyRole("CEO"))
	assert.Equal(t, models.RoleManager, NormalizeLegacyRole("Manager"))
	assert.Equal(t, models.RoleHOD, NormalizeLegacyRole(" HOD "))
	assert.Equal(t, models.RoleAgent, NormalizeLegacyRole("Sales Executive"))
	assert.Equal(t, models.RoleAgent, NormalizeLegacyRole(""))
}
