// importer/assembler.go
package importer

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"github.com/Abdullah4Jovera/crm_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssemblerStore is everything the assembler needs from persistence. Every
// find-or-create method is keyed by a natural field (name, phone, email) so
// re-running the assembler over the same input never creates duplicates.
type AssemblerStore interface {
	FindOrCreatePipeline(ctx context.Context, name, createdBy string) (primitive.ObjectID, error)
	FindOrCreateLeadType(ctx context.Context, name, createdBy string) (primitive.ObjectID, error)
	FindOrCreateSource(ctx context.Context, name string, leadType primitive.ObjectID, createdBy string) (primitive.ObjectID, error)
	FindOrCreateProduct(ctx context.Context, name string) (primitive.ObjectID, error)
	FindOrCreateDealStage(ctx context.Context, name string, order int) (primitive.ObjectID, error)
	FindOrCreateBranch(ctx context.Context, name string) (primitive.ObjectID, error)
	FindOrCreateClientByPhone(ctx context.Context, phone, name, email string) (primitive.ObjectID, error)
	UpsertUserByEmail(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindLeadByClient(ctx context.Context, client primitive.ObjectID) (*models.Lead, error)
	InsertDeal(ctx context.Context, deal *models.Deal) (primitive.ObjectID, error)
	InsertCommission(ctx context.Context, sc *models.ServiceCommission) (primitive.ObjectID, error)
	LinkDealCommission(ctx context.Context, deal, commission primitive.ObjectID) error
	AppendActivityLog(ctx context.Context, entry *models.ActivityLog) (primitive.ObjectID, error)
	SetDealActivityLogs(ctx context.Context, deal primitive.ObjectID, logs []primitive.ObjectID) error
}

// Assembler normalizes legacy deal exports into deals, commissions and
// activity logs. Records are processed strictly sequentially; a bad record
// is logged and skipped, never aborting the run.
type Assembler struct {
	store  AssemblerStore
	logger *log.Logger
}

func NewAssembler(store AssemblerStore, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{store: store, logger: logger}
}

// Run processes the legacy export end to end and returns the run report.
func (a *Assembler) Run(ctx context.Context, data *LegacyData) (*Report, error) {
	report := newReport()
	report.DealsTotal = len(data.Deals)

	// Catalog maps: legacy id -> normalized ObjectID, built through
	// find-or-create so repeated runs reuse existing documents.
	leadTypes := make(map[int64]primitive.ObjectID)
	for _, lt := range data.LeadTypes {
		id, err := a.store.FindOrCreateLeadType(ctx, lt.Name, lt.CreatedBy)
		if err != nil {
			return nil, err
		}
		leadTypes[lt.ID] = id
	}

	pipelines := make(map[int64]primitive.ObjectID)
	for _, p := range data.Pipelines {
		id, err := a.store.FindOrCreatePipeline(ctx, p.Name, p.CreatedBy)
		if err != nil {
			return nil, err
		}
		pipelines[p.ID] = id
	}

	sources := make(map[int64]primitive.ObjectID)
	for _, s := range data.Sources {
		leadTypeID, ok := leadTypes[s.LeadTypeID]
		if !ok {
			a.logger.Printf("warning: source %q references unknown lead type %d, skipping", s.Name, s.LeadTypeID)
			continue
		}
		id, err := a.store.FindOrCreateSource(ctx, s.Name, leadTypeID, s.CreatedBy)
		if err != nil {
			return nil, err
		}
		sources[s.ID] = id
	}

	products := make(map[int64]primitive.ObjectID)
	for _, p := range data.Products {
		id, err := a.store.FindOrCreateProduct(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		products[p.ID] = id
	}

	dealStages := make(map[int64]primitive.ObjectID)
	for _, ds := range data.DealStages {
		id, err := a.store.FindOrCreateDealStage(ctx, ds.Name, ds.Order)
		if err != nil {
			return nil, err
		}
		dealStages[ds.ID] = id
	}

	labels := make(map[string]string, len(data.Labels))
	for _, l := range data.Labels {
		labels[strconv.FormatInt(l.ID, 10)] = l.Name
	}

	usersByID := make(map[int64]LegacyUser, len(data.Users))
	for _, u := range data.Users {
		usersByID[u.ID] = u
	}
	commissionsByDeal := make(map[int64]LegacyServiceCommission, len(data.ServiceCommissions))
	for _, sc := range data.ServiceCommissions {
		commissionsByDeal[sc.DealID] = sc
	}

	run := &assemblerRun{
		Assembler:         a,
		report:            report,
		pipelines:         pipelines,
		sources:           sources,
		products:          products,
		leadTypes:         leadTypes,
		dealStages:        dealStages,
		labels:            labels,
		usersByID:         usersByID,
		commissionsByDeal: commissionsByDeal,
		userIDs:           make(map[int64]primitive.ObjectID),
		activities:        data.DealActivities,
		clients:           data.Clients,
	}

	for _, deal := range data.Deals {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		run.processDeal(ctx, deal)
	}

	report.FinishedAt = time.Now()
	a.logger.Printf("import run %s: %d deals, %d created, %d skipped (signed), %d failed, %d missing commission, %d activity logs",
		report.RunID, report.DealsTotal, report.DealsCreated, report.SkippedSigned,
		report.Failed, report.MissingCommission, report.ActivityLogs)
	return report, nil
}

type assemblerRun struct {
	*Assembler
	report            *Report
	pipelines         map[int64]primitive.ObjectID
	sources           map[int64]primitive.ObjectID
	products          map[int64]primitive.ObjectID
	leadTypes         map[int64]primitive.ObjectID
	dealStages        map[int64]primitive.ObjectID
	labels            map[string]string
	usersByID         map[int64]LegacyUser
	commissionsByDeal map[int64]LegacyServiceCommission
	userIDs           map[int64]primitive.ObjectID
	activities        []LegacyDealActivity
	clients           []LegacyClient
}

// processDeal normalizes one legacy deal. Failures are logged and counted;
// the caller moves on to the next record.
func (r *assemblerRun) processDeal(ctx context.Context, deal LegacyDeal) {
	// Already fully signed and handed over; that cohort is handled
	// separately downstream.
	if deal.ContractStage == models.ContractStageSigned {
		r.logger.Printf("skipping deal %d: contract stage is %s", deal.ID, models.ContractStageSigned)
		r.report.SkippedSigned++
		return
	}

	clientData, ok := r.findClient(deal.ClientID)
	if !ok {
		r.logger.Printf("error: client %d not found for deal %d", deal.ClientID, deal.ID)
		r.report.Failed++
		return
	}
	clientID, err := r.store.FindOrCreateClientByPhone(ctx, clientData.Phone, clientData.Name, clientData.Email)
	if err != nil {
		r.logger.Printf("error: resolving client for deal %d: %v", deal.ID, err)
		r.report.Failed++
		return
	}

	creatorID, err := r.resolveUser(ctx, deal.CreatedBy)
	if err != nil {
		r.logger.Printf("error: resolving creator %d for deal %d: %v", deal.CreatedBy, deal.ID, err)
		r.report.Failed++
		return
	}

	lead, err := r.store.FindLeadByClient(ctx, clientID)
	if err != nil {
		r.logger.Printf("error: looking up lead for client %s: %v", clientID.Hex(), err)
		r.report.Failed++
		return
	}
	if lead == nil {
		r.logger.Printf("error: no lead found for client %s (deal %d)", clientID.Hex(), deal.ID)
		r.report.Failed++
		return
	}

	leadID := lead.ID
	now := time.Now()
	normalized := &models.Deal{
		IsTransfer:    false,
		Client:        clientID,
		LeadType:      r.leadTypes[deal.LeadType],
		Pipeline:      r.pipelines[deal.PipelineID],
		Source:        r.sources[deal.Sources],
		Product:       r.products[deal.Products],
		ContractStage: deal.ContractStage,
		Labels:        r.resolveLabels(deal.Labels),
		Status:        deal.Status,
		CreatedBy:     creatorID,
		Lead:          &leadID,
		SelectedUsers: lead.SelectedUsers,
		IsActive:      deal.IsActive == "1",
		ActivityLogs:  []primitive.ObjectID{},
		Date:          parseLegacyTime(deal.Date),
		CreatedAt:     parseLegacyTime(deal.CreatedAt),
		UpdatedAt:     parseLegacyTime(deal.UpdatedAt),
	}

	dealID, err := r.store.InsertDeal(ctx, normalized)
	if err != nil {
		r.logger.Printf("error: inserting deal %d: %v", deal.ID, err)
		r.report.Failed++
		return
	}
	r.report.DealsCreated++

	// A deal without a commission record is created anyway and flagged for
	// reconciliation; it never blocks the batch.
	if sc, ok := r.commissionsByDeal[deal.ID]; ok {
		commissionID, err := r.buildCommission(ctx, dealID, sc)
		if err != nil {
			r.logger.Printf("error: commission for deal %d: %v", deal.ID, err)
			r.report.MissingCommission++
			r.report.MissingCommissionDeals = append(r.report.MissingCommissionDeals, deal.ID)
		} else if err := r.store.LinkDealCommission(ctx, dealID, commissionID); err != nil {
			r.logger.Printf("error: linking commission for deal %d: %v", deal.ID, err)
		}
	} else {
		r.logger.Printf("warning: no service commission for deal %d", deal.ID)
		r.report.MissingCommission++
		r.report.MissingCommissionDeals = append(r.report.MissingCommissionDeals, deal.ID)
	}

	var logIDs []primitive.ObjectID
	for _, activity := range r.activities {
		if activity.DealID != deal.ID {
			continue
		}
		remark, _ := json.Marshal(activity.Remark)
		logID, err := r.store.AppendActivityLog(ctx, &models.ActivityLog{
			User:      creatorID,
			Deal:      &dealID,
			LogType:   activity.LogType,
			Remark:    string(remark),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			r.logger.Printf("error: activity log for deal %d: %v", deal.ID, err)
			continue
		}
		logIDs = append(logIDs, logID)
		r.report.ActivityLogs++
	}
	if len(logIDs) > 0 {
		if err := r.store.SetDealActivityLogs(ctx, dealID, logIDs); err != nil {
			r.logger.Printf("error: attaching activity logs to deal %d: %v", deal.ID, err)
		}
	}
}

func (r *assemblerRun) findClient(id int64) (LegacyClient, bool) {
	for _, c := range r.clients {
		if c.ID == id {
			return c, true
		}
	}
	return LegacyClient{}, false
}

// resolveUser upserts the legacy user by email and caches the result for
// the rest of the run.
func (r *assemblerRun) resolveUser(ctx context.Context, legacyID int64) (primitive.ObjectID, error) {
	if id, ok := r.userIDs[legacyID]; ok {
		return id, nil
	}
	legacy, ok := r.usersByID[legacyID]
	if !ok {
		return primitive.NilObjectID, errUnknownUser(legacyID)
	}

	user := &models.User{
		Name:      legacy.Name,
		Email:     legacy.Email,
		Password:  legacy.Password,
		Image:     legacy.Avatar,
		Role:      NormalizeLegacyRole(legacy.Designation),
		Verified:  legacy.IsEmailVerified == "1",
		DelStatus: legacy.DeleteStatus == "1",
	}
	if pipelineID, ok := r.pipelines[legacy.Pipeline]; ok {
		user.Pipelines = []primitive.ObjectID{pipelineID}
	}
	branchName := legacy.Branch
	if branchName == "" {
		branchName = "Abu Dhabi"
	}
	branchID, err := r.store.FindOrCreateBranch(ctx, branchName)
	if err != nil {
		return primitive.NilObjectID, err
	}
	user.Branch = &branchID

	id, err := r.store.UpsertUserByEmail(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.userIDs[legacyID] = id
	return id, nil
}

// resolveLabels maps a comma-separated legacy label id list to label names.
// Unresolved ids render as "Unknown".
func (r *assemblerRun) resolveLabels(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		key := strings.TrimSpace(part)
		if key == "" {
			continue
		}
		if name, ok := r.labels[key]; ok {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return names
}

// buildCommission maps a legacy commission row onto the normalized record,
// resolving each role slot's user through the same upsert-by-email path.
func (r *assemblerRun) buildCommission(ctx context.Context, dealID primitive.ObjectID, sc LegacyServiceCommission) (primitive.ObjectID, error) {
	record := &models.ServiceCommission{
		Deal:                          &dealID,
		FinanceAmount:                 utils.ParseFloat(sc.FinanceAmount),
		BankCommission:                utils.ParseFloat(sc.BankCommission),
		CustomerCommission:            utils.ParseFloat(sc.CustomerCommission),
		WithVATCommission:             utils.ParseFloat(sc.WithVATCommission),
		WithoutVATCommission:          utils.ParseFloat(sc.WithoutVATCommission),
		HODSaleCommission:             utils.ParseFloat(sc.HODSaleCommission),
		SaleManagerCommission:         utils.ParseFloat(sc.SaleManagerCommission),
		CoordinatorCommission:         utils.ParseFloat(sc.CoordinatorCommission),
		TeamLeaderCommission:          utils.ParseFloat(sc.TeamLeaderCommission),
		SalesAgentCommission:          utils.ParseFloat(sc.SalesAgentCommission),
		SaleManagerRefCommission:      utils.ParseFloat(sc.SaleManagerRefCommission),
		AgentCommission:               utils.ParseFloat(sc.AgentCommission),
		TSHODCommission:               utils.ParseFloat(sc.TSHODCommission),
		TSTeamLeaderCommission:        utils.ParseFloat(sc.TSTeamLeaderCommission),
		TSAgentCommission:             utils.ParseFloat(sc.TSAgentCommission),
		ITTeamCommission:              utils.ParseFloat(sc.ITTeamCommission),
		MarketingTeamCommission:       utils.ParseFloat(sc.MarketingTeamCommission),
		MarketingManagerCommission:    utils.ParseFloat(sc.MarketingManagerCommission),
		MarketingTeamLeaderCommission: utils.ParseFloat(sc.MarketingTeamLeaderCommission),
		OtherNameCommission:           utils.ParseFloat(sc.OtherNameCommission),
		BrokerName:                    sc.BrokerName,
		BrokerNameCommission:          utils.ParseFloat(sc.BrokerNameCommission),
		CreatedAt:                     parseLegacyTime(sc.CreatedAt),
		UpdatedAt:                     parseLegacyTime(sc.UpdatedAt),
	}

	slots := []struct {
		legacy int64
		dst    **primitive.ObjectID
	}{
		{sc.HODSale, &record.HODSale},
		{sc.SaleManager, &record.SaleManager},
		{sc.Coordinator, &record.Coordinator},
		{sc.TeamLeader, &record.TeamLeader},
		{sc.SalesAgent, &record.SalesAgent},
		{sc.SaleManagerRef, &record.SaleManagerRef},
		{sc.AgentRef, &record.AgentRef},
		{sc.TSHOD, &record.TSHOD},
		{sc.TSTeamLeader, &record.TSTeamLeader},
		{sc.TSAgent, &record.TSAgent},
		{sc.MarketingManager, &record.MarketingManager},
		{sc.MarketingTeamLeader, &record.MarketingTeamLeader},
		{sc.OtherName, &record.OtherName},
	}
	for _, slot := range slots {
		if slot.legacy == 0 {
			continue
		}
		id, err := r.resolveUser(ctx, slot.legacy)
		if err != nil {
			// An unknown user in a commission slot is tolerated: the slot
			// stays empty and the amount is kept.
			r.logger.Printf("warning: commission slot references unknown user %d", slot.legacy)
			continue
		}
		resolved := id
		*slot.dst = &resolved
	}

	return r.store.InsertCommission(ctx, record)
}

// NormalizeLegacyRole maps a free-text legacy designation onto the closed
// role set; anything unrecognized becomes Agent.
func NormalizeLegacyRole(designation string) models.Role {
	if role, ok := models.ParseRole(strings.TrimSpace(designation)); ok {
		return role
	}
	return models.RoleAgent
}

type errUnknownUser int64

func (e errUnknownUser) Error() string {
	return "unknown legacy user id " + strconv.FormatInt(int64(e), 10)
}
