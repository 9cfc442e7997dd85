package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

type fakeLeadStore struct {
	leads map[primitive.ObjectID]*models.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: make(map[primitive.ObjectID]*models.Lead)}
}

func (s *fakeLeadStore) Insert(ctx context.Context, lead *models.Lead) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	copied := *lead
	copied.ID = id
	s.leads[id] = &copied
	return id, nil
}

func (s *fakeLeadStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, nil
	}
	copied := *lead
	return &copied, nil
}

func (s *fakeLeadStore) Save(ctx context.Context, lead *models.Lead) error {
	copied := *lead
	s.leads[lead.ID] = &copied
	return nil
}

type fakeClientDirectory struct {
	byPhone map[string]primitive.ObjectID
}

func newFakeClientDirectory() *fakeClientDirectory {
	return &fakeClientDirectory{byPhone: make(map[string]primitive.ObjectID)}
}

func (d *fakeClientDirectory) FindOrCreateByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error) {
	if id, ok := d.byPhone[phone]; ok {
		return id, nil
	}
	id := primitive.NewObjectID()
	d.byPhone[phone] = id
	return id, nil
}

type fakeCatalog struct {
	stages    map[primitive.ObjectID]bool
	leadTypes map[primitive.ObjectID]bool
	sources   map[primitive.ObjectID]bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		stages:    make(map[primitive.ObjectID]bool),
		leadTypes: make(map[primitive.ObjectID]bool),
		sources:   make(map[primitive.ObjectID]bool),
	}
}

func (f *fakeCatalog) stage() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.stages[id] = true
	return id
}

func (f *fakeCatalog) leadType() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.leadTypes[id] = true
	return id
}

func (f *fakeCatalog) source() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.sources[id] = true
	return id
}

func (f *fakeCatalog) ProductStageExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.stages[id], nil
}

func (f *fakeCatalog) LeadTypeExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.leadTypes[id], nil
}

func (f *fakeCatalog) SourceExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return f.sources[id], nil
}

type fakeActivity struct {
	entries []models.ActivityLog
}

func (a *fakeActivity) Append(ctx context.Context, entry *models.ActivityLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	a.entries = append(a.entries, *entry)
	return id, nil
}

type leadFixture struct {
	service  *LeadService
	store    *fakeLeadStore
	clients  *fakeClientDirectory
	catalog  *fakeCatalog
	activity *fakeActivity
	dir      *fakeDirectory
}

func newLeadFixture() *leadFixture {
	store := newFakeLeadStore()
	clients := newFakeClientDirectory()
	catalog := newFakeCatalog()
	activity := &fakeActivity{}
	dir := &fakeDirectory{}
	return &leadFixture{
		service:  NewLeadService(store, clients, catalog, activity, NewRoleResolver(dir)),
		store:    store,
		clients:  clients,
		catalog:  catalog,
		activity: activity,
		dir:      dir,
	}
}

func (f *leadFixture) validCreateInput(actor primitive.ObjectID) CreateLeadInput {
	return CreateLeadInput{
		Actor:        actor,
		ClientPhone:  "0501234567",
		ClientName:   "Test Client",
		Pipeline:     primitive.NewObjectID(),
		Branch:       primitive.NewObjectID(),
		Product:      primitive.NewObjectID(),
		ProductStage: f.catalog.stage(),
		Source:       f.catalog.source(),
		LeadType:     f.catalog.leadType(),
	}
}

func TestCreateLeadMissingFields(t *testing.T) {
	f := newLeadFixture()
	in := f.validCreateInput(primitive.NewObjectID())
	in.ProductStage = primitive.NilObjectID

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateLeadInvalidProductStage(t *testing.T) {
	f := newLeadFixture()
	in := f.validCreateInput(primitive.NewObjectID())
	in.ProductStage = primitive.NewObjectID() // not in catalog

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateLeadUnknownLeadType(t *testing.T) {
	f := newLeadFixture()
	in := f.validCreateInput(primitive.NewObjectID())
	in.LeadType = primitive.NewObjectID()

	_, err := f.service.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateLeadDedupsClientByPhone(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	first, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)

	assert.Equal(t, first.Client, second.Client, "same phone must resolve to the same client")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateLeadVisibilityIncludesCreator(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	lead, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)
	assert.True(t, lead.IsVisibleTo(actor))
}

func TestTransferRetainsPreviousHOD(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	in := f.validCreateInput(actor)
	oldHOD := f.dir.add(models.RoleHOD, in.Pipeline, in.Branch)
	oldManager := f.dir.add(models.RoleManager, in.Pipeline, in.Branch)

	lead, err := f.service.Create(context.Background(), in)
	require.NoError(t, err)
	require.True(t, lead.IsVisibleTo(oldHOD))
	require.True(t, lead.IsVisibleTo(oldManager))

	newPipeline := primitive.NewObjectID()
	newBranch := primitive.NewObjectID()
	newManager := f.dir.add(models.RoleManager, newPipeline, newBranch)

	transferred, err := f.service.Transfer(context.Background(), lead.ID, TransferLeadInput{
		Actor:        actor,
		Pipeline:     newPipeline,
		Branch:       newBranch,
		Product:      in.Product,
		ProductStage: in.ProductStage,
	})
	require.NoError(t, err)

	assert.True(t, transferred.IsVisibleTo(oldHOD), "previous HOD keeps access after transfer")
	assert.False(t, transferred.IsVisibleTo(oldManager), "previous manager loses access after transfer")
	assert.True(t, transferred.IsVisibleTo(newManager))
	assert.True(t, transferred.IsVisibleTo(actor))
	assert.Equal(t, newPipeline, transferred.Pipeline)
}

func TestMoveUnchangedPipelineKeepsVisibility(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	in := f.validCreateInput(actor)
	lead, err := f.service.Create(context.Background(), in)
	require.NoError(t, err)
	before := append([]primitive.ObjectID{}, lead.SelectedUsers...)

	// A new manager appears after creation. Moving within the same
	// pipeline/branch must not trigger a recompute that would pick them up.
	latecomer := f.dir.add(models.RoleManager, in.Pipeline, in.Branch)

	newStage := f.catalog.stage()
	moved, err := f.service.Move(context.Background(), lead.ID, MoveLeadInput{
		Actor:        actor,
		Pipeline:     in.Pipeline,
		Branch:       in.Branch,
		ProductStage: newStage,
	})
	require.NoError(t, err)

	assert.Equal(t, before, moved.SelectedUsers, "unchanged pipeline/branch leaves the set untouched")
	assert.False(t, moved.IsVisibleTo(latecomer))
	assert.Equal(t, newStage, moved.ProductStage)
}

func TestMoveChangedPipelineRecomputesVisibility(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	in := f.validCreateInput(actor)
	oldHOD := f.dir.add(models.RoleHOD, in.Pipeline, in.Branch)

	lead, err := f.service.Create(context.Background(), in)
	require.NoError(t, err)
	require.True(t, lead.IsVisibleTo(oldHOD))

	newPipeline := primitive.NewObjectID()
	newBranch := primitive.NewObjectID()
	newHOD := f.dir.add(models.RoleHOD, newPipeline, newBranch)

	moved, err := f.service.Move(context.Background(), lead.ID, MoveLeadInput{
		Actor:        actor,
		Pipeline:     newPipeline,
		Branch:       newBranch,
		ProductStage: in.ProductStage,
	})
	require.NoError(t, err)

	assert.False(t, moved.IsVisibleTo(oldHOD), "move clears previous pipeline users")
	assert.True(t, moved.IsVisibleTo(newHOD))
	assert.True(t, moved.IsVisibleTo(actor))
}

func TestEditScopesManagersByPipelineOnly(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	in := f.validCreateInput(actor)
	lead, err := f.service.Create(context.Background(), in)
	require.NoError(t, err)

	// Manager of the same pipeline, different branch: edit widens the branch
	// scope, so they must be picked up.
	otherBranchManager := f.dir.add(models.RoleManager, in.Pipeline, primitive.NewObjectID())

	edited, err := f.service.Edit(context.Background(), lead.ID, EditLeadInput{
		Actor:        actor,
		ClientPhone:  in.ClientPhone,
		Pipeline:     in.Pipeline,
		Branch:       in.Branch,
		Product:      in.Product,
		ProductStage: in.ProductStage,
		Source:       in.Source,
		LeadType:     in.LeadType,
	})
	require.NoError(t, err)

	assert.True(t, edited.IsVisibleTo(otherBranchManager))
	assert.True(t, edited.IsVisibleTo(actor))
	assert.True(t, edited.IsVisibleTo(lead.CreatedBy))
	require.NotNil(t, edited.UpdatedBy)
	assert.Equal(t, actor, *edited.UpdatedBy)
}

func TestUpdateProductStageUnknownStage(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	lead, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)

	_, err = f.service.UpdateProductStage(context.Background(), lead.ID, actor, primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateProductStageUnauthorized(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	lead, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)
	newStage := f.catalog.stage()

	_, err = f.service.UpdateProductStage(context.Background(), lead.ID, outsider, newStage)
	require.Error(t, err)
	assert.Equal(t, KindAuthorization, KindOf(err))

	// The lead must be untouched.
	unchanged, err := f.store.FindByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ProductStage, unchanged.ProductStage)
	assert.Empty(t, f.activity.entries)
}

func TestUpdateProductStageRecordsActivity(t *testing.T) {
	f := newLeadFixture()
	actor := primitive.NewObjectID()

	lead, err := f.service.Create(context.Background(), f.validCreateInput(actor))
	require.NoError(t, err)
	oldStage := lead.ProductStage
	newStage := f.catalog.stage()

	updated, err := f.service.UpdateProductStage(context.Background(), lead.ID, actor, newStage)
	require.NoError(t, err)

	assert.Equal(t, newStage, updated.ProductStage)
	assert.Len(t, updated.ActivityLogs, 1)

	require.Len(t, f.activity.entries, 1)
	entry := f.activity.entries[0]
	assert.Equal(t, "product_stage_update", entry.LogType)
	assert.Equal(t, actor, entry.User)
	assert.Contains(t, entry.Remark, oldStage.Hex())
	assert.Contains(t, entry.Remark, newStage.Hex())
}

func TestUpdateProductStageLeadNotFound(t *testing.T) {
	f := newLeadFixture()
	stage := f.catalog.stage()

	_, err := f.service.UpdateProductStage(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), stage)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
