// services/lead_service.go
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStore persists leads.
type LeadStore interface {
	Insert(ctx context.Context, lead *models.Lead) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error)
	Save(ctx context.Context, lead *models.Lead) error
}

// ClientDirectory resolves clients by their phone natural key. An existing
// client gets its contact fields overwritten when new values are provided;
// a missing client is created.
type ClientDirectory interface {
	FindOrCreateByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error)
}

// CatalogLookup existence-checks foreign references.
type CatalogLookup interface {
	ProductStageExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	LeadTypeExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	SourceExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Append(ctx context.Context, entry *models.ActivityLog) (primitive.ObjectID, error)
}

// LeadService owns the lead lifecycle: create, transfer, move, edit and
// product-stage updates, each recomputing the visibility set through the
// role resolver.
type LeadService struct {
	leads    LeadStore
	clients  ClientDirectory
	catalog  CatalogLookup
	activity ActivityRecorder
	resolver *RoleResolver
}

func NewLeadService(leads LeadStore, clients ClientDirectory, catalog CatalogLookup, activity ActivityRecorder, resolver *RoleResolver) *LeadService {
	return &LeadService{
		leads:    leads,
		clients:  clients,
		catalog:  catalog,
		activity: activity,
		resolver: resolver,
	}
}

// CreateLeadInput carries the parsed create-lead payload.
type CreateLeadInput struct {
	Actor         primitive.ObjectID
	ClientPhone   string
	ClientName    string
	ClientEmail   string
	Pipeline      primitive.ObjectID
	Branch        primitive.ObjectID
	Product       primitive.ObjectID
	ProductStage  primitive.ObjectID
	Source        primitive.ObjectID
	LeadType      primitive.ObjectID
	Description   string
	SelectedUsers []primitive.ObjectID
}

// Create resolves or creates the client by phone, validates the catalog
// references, computes the initial visibility set and persists the lead.
func (s *LeadService) Create(ctx context.Context, in CreateLeadInput) (*models.Lead, error) {
	if in.ProductStage.IsZero() || in.LeadType.IsZero() || in.Source.IsZero() {
		return nil, ValidationError("missing required fields")
	}
	if err := s.requireProductStage(ctx, in.ProductStage, false); err != nil {
		return nil, err
	}
	if ok, err := s.catalog.LeadTypeExists(ctx, in.LeadType); err != nil {
		return nil, StoreError("checking lead type", err)
	} else if !ok {
		return nil, NotFoundError("lead type not found")
	}
	if ok, err := s.catalog.SourceExists(ctx, in.Source); err != nil {
		return nil, StoreError("checking source", err)
	} else if !ok {
		return nil, NotFoundError("source not found")
	}

	clientID, err := s.clients.FindOrCreateByPhone(ctx, in.ClientPhone, in.ClientName, in.ClientEmail)
	if err != nil {
		return nil, StoreError("resolving client", err)
	}

	selected, err := s.resolver.ResolveVisibility(ctx, VisibilityInput{
		Pipeline: in.Pipeline,
		Branch:   in.Branch,
		Creator:  in.Actor,
		Actor:    in.Actor,
		Extra:    in.SelectedUsers,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead := &models.Lead{
		Client:        clientID,
		CreatedBy:     in.Actor,
		SelectedUsers: selected,
		Pipeline:      in.Pipeline,
		Branch:        in.Branch,
		Product:       in.Product,
		ProductStage:  in.ProductStage,
		Source:        in.Source,
		LeadType:      in.LeadType,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := s.leads.Insert(ctx, lead)
	if err != nil {
		return nil, StoreError("creating lead", err)
	}
	lead.ID = id
	return lead, nil
}

// TransferLeadInput carries the parsed transfer payload.
type TransferLeadInput struct {
	Actor        primitive.ObjectID
	Pipeline     primitive.ObjectID
	Branch       primitive.ObjectID
	Product      primitive.ObjectID
	ProductStage primitive.ObjectID
}

// Transfer hands a lead over to a new pipeline/branch. Visibility is
// additive: HOD users of the previous pipeline/branch stay in the set, so
// historical stakeholders keep access. Managers of the old pipeline drop
// out by construction unless they are creator or global-role.
func (s *LeadService) Transfer(ctx context.Context, leadID primitive.ObjectID, in TransferLeadInput) (*models.Lead, error) {
	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProductStage(ctx, in.ProductStage, false); err != nil {
		return nil, err
	}

	prevPipeline := lead.Pipeline
	prevBranch := lead.Branch
	selected, err := s.resolver.ResolveVisibility(ctx, VisibilityInput{
		Pipeline:         in.Pipeline,
		Branch:           in.Branch,
		Creator:          lead.CreatedBy,
		Actor:            in.Actor,
		PreviousPipeline: &prevPipeline,
		PreviousBranch:   &prevBranch,
	})
	if err != nil {
		return nil, err
	}

	lead.SelectedUsers = selected
	lead.Pipeline = in.Pipeline
	lead.Branch = in.Branch
	lead.Product = in.Product
	lead.ProductStage = in.ProductStage
	lead.UpdatedAt = time.Now()
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, StoreError("saving transferred lead", err)
	}
	return lead, nil
}

// MoveLeadInput carries the parsed move payload.
type MoveLeadInput struct {
	Actor        primitive.ObjectID
	Pipeline     primitive.ObjectID
	Branch       primitive.ObjectID
	ProductStage primitive.ObjectID
}

// Move reassigns pipeline/branch without transfer semantics. When pipeline
// or branch actually changes the visibility set is cleared and recomputed
// from scratch for the new pipeline/branch; previous Manager/HOD users are
// lost unless they are creator or global-role. An unchanged pipeline and
// branch leaves the set untouched.
func (s *LeadService) Move(ctx context.Context, leadID primitive.ObjectID, in MoveLeadInput) (*models.Lead, error) {
	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProductStage(ctx, in.ProductStage, false); err != nil {
		return nil, err
	}

	if lead.Pipeline != in.Pipeline || lead.Branch != in.Branch {
		selected, err := s.resolver.ResolveVisibility(ctx, VisibilityInput{
			Pipeline: in.Pipeline,
			Branch:   in.Branch,
			Creator:  lead.CreatedBy,
			Actor:    in.Actor,
		})
		if err != nil {
			return nil, err
		}
		lead.SelectedUsers = selected
	}

	lead.Pipeline = in.Pipeline
	lead.Branch = in.Branch
	lead.ProductStage = in.ProductStage
	lead.UpdatedAt = time.Now()
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, StoreError("saving moved lead", err)
	}
	return lead, nil
}

// EditLeadInput carries the parsed edit payload.
type EditLeadInput struct {
	Actor         primitive.ObjectID
	ClientPhone   string
	ClientName    string
	ClientEmail   string
	Pipeline      primitive.ObjectID
	Branch        primitive.ObjectID
	Product       primitive.ObjectID
	ProductStage  primitive.ObjectID
	Source        primitive.ObjectID
	LeadType      primitive.ObjectID
	Description   string
	SelectedUsers []primitive.ObjectID
}

// Edit updates client contact info and the lead's references, re-unioning
// visibility from the actor, creator, explicit selected users, global-role
// users and the new pipeline's Manager/HOD users. The Manager/HOD query is
// scoped by pipeline only, and previous-pipeline holdovers are never
// carried.
func (s *LeadService) Edit(ctx context.Context, leadID primitive.ObjectID, in EditLeadInput) (*models.Lead, error) {
	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProductStage(ctx, in.ProductStage, false); err != nil {
		return nil, err
	}

	clientID, err := s.clients.FindOrCreateByPhone(ctx, in.ClientPhone, in.ClientName, in.ClientEmail)
	if err != nil {
		return nil, StoreError("resolving client", err)
	}

	selected, err := s.resolver.ResolveVisibility(ctx, VisibilityInput{
		Pipeline:  in.Pipeline,
		Branch:    in.Branch,
		Creator:   lead.CreatedBy,
		Actor:     in.Actor,
		AnyBranch: true,
		Extra:     in.SelectedUsers,
	})
	if err != nil {
		return nil, err
	}

	actor := in.Actor
	lead.Client = clientID
	lead.UpdatedBy = &actor
	lead.SelectedUsers = selected
	lead.Pipeline = in.Pipeline
	lead.Branch = in.Branch
	lead.Product = in.Product
	lead.ProductStage = in.ProductStage
	lead.Source = in.Source
	lead.LeadType = in.LeadType
	lead.Description = in.Description
	lead.UpdatedAt = time.Now()
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, StoreError("saving edited lead", err)
	}
	return lead, nil
}

// UpdateProductStage moves a lead along its product funnel. Only a user
// already in the lead's visibility set may do this.
func (s *LeadService) UpdateProductStage(ctx context.Context, leadID, actor, newStage primitive.ObjectID) (*models.Lead, error) {
	if err := s.requireProductStage(ctx, newStage, true); err != nil {
		return nil, err
	}
	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.IsVisibleTo(actor) {
		return nil, AuthorizationError("you are not authorized to update this lead")
	}

	previous := lead.ProductStage
	lead.ProductStage = newStage
	lead.UpdatedAt = time.Now()

	remark, _ := json.Marshal(map[string]string{
		"from": previous.Hex(),
		"to":   newStage.Hex(),
	})
	id := lead.ID
	logID, err := s.activity.Append(ctx, &models.ActivityLog{
		User:      actor,
		Lead:      &id,
		LogType:   "product_stage_update",
		Remark:    string(remark),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return nil, StoreError("recording stage change", err)
	}
	lead.ActivityLogs = append(lead.ActivityLogs, logID)

	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, StoreError("saving lead", err)
	}
	return lead, nil
}

func (s *LeadService) findLead(ctx context.Context, id primitive.ObjectID) (*models.Lead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, StoreError("loading lead", err)
	}
	if lead == nil {
		return nil, NotFoundError("lead not found")
	}
	return lead, nil
}

// requireProductStage checks the stage reference resolves. The create,
// transfer, move and edit flows report an invalid stage as a validation
// failure; the update-product-stage flow reports it as not found, matching
// the API's historical status codes.
func (s *LeadService) requireProductStage(ctx context.Context, id primitive.ObjectID, asNotFound bool) error {
	if id.IsZero() {
		return ValidationError("missing required fields")
	}
	ok, err := s.catalog.ProductStageExists(ctx, id)
	if err != nil {
		return StoreError("checking product stage", err)
	}
	if !ok {
		if asNotFound {
			return NotFoundError("product stage not found")
		}
		return ValidationError("invalid product stage")
	}
	return nil
}
