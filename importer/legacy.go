// importer/legacy.go
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Legacy records mirror the flat JSON arrays exported from the old system.
// Identifiers are legacy integers; flags arrive as "0"/"1" strings and
// numeric amounts as strings.

type LegacyClient struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LegacyUser struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Avatar          string `json:"avatar"`
	Designation     string `json:"designation"`
	Pipeline        int64  `json:"pipeline"`
	Branch          string `json:"branch"`
	DeleteStatus    string `json:"delete_status"`
	IsEmailVerified string `json:"is_email_verified"`
}

type LegacyPipeline struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LegacyLeadType struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LegacySource struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LeadTypeID int64  `json:"lead_type_id"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type LegacyProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LegacyLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LegacyDealStage struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	Order     int    `json:"order,string"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LegacyDeal struct {
	ID                  int64  `json:"id"`
	ClientID            int64  `json:"client_id"`
	CreatedBy           int64  `json:"created_by"`
	LeadType            int64  `json:"lead_type"`
	PipelineID          int64  `json:"pipeline_id"`
	Sources             int64  `json:"sources"`
	Products            int64  `json:"products"`
	ContractStage       string `json:"contract_stage"`
	Labels              string `json:"labels"`
	Status              string `json:"status"`
	IsActive            string `json:"is_active"`
	ServiceCommissionID int64  `json:"service_commission_id"`
	Date                string `json:"date"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// LegacyServiceCommission keeps every amount as a string; garbage parses to
// zero. Role slots hold legacy user ids (zero when unset).
type LegacyServiceCommission struct {
	ID     int64 `json:"id"`
	DealID int64 `json:"deal_id"`

	FinanceAmount        string `json:"finance_amount"`
	BankCommission       string `json:"bank_commission"`
	CustomerCommission   string `json:"customer_commission"`
	WithVATCommission    string `json:"with_vat_commission"`
	WithoutVATCommission string `json:"without_vat_commission"`

	HODSale           int64  `json:"hodsale"`
	HODSaleCommission string `json:"hodsalecommission"`

	SaleManager           int64  `json:"salemanager"`
	SaleManagerCommission string `json:"salemanagercommission"`

	Coordinator           int64  `json:"coordinator"`
	CoordinatorCommission string `json:"coordinator_commission"`

	TeamLeader           int64  `json:"team_leader"`
	TeamLeaderCommission string `json:"team_leader_commission"`

	SalesAgent           int64  `json:"salesagent"`
	SalesAgentCommission string `json:"salesagent_commission"`

	SaleManagerRef           int64  `json:"salemanagerref"`
	SaleManagerRefCommission string `json:"salemanagerrefcommission"`

	AgentRef        int64  `json:"agentref"`
	AgentCommission string `json:"agent_commission"`

	TSHOD           int64  `json:"ts_hod"`
	TSHODCommission string `json:"ts_hod_commision"`

	TSTeamLeader           int64  `json:"ts_team_leader"`
	TSTeamLeaderCommission string `json:"ts_team_leader_commission"`

	TSAgent           int64  `json:"tsagent"`
	TSAgentCommission string `json:"tsagent_commission"`

	ITTeamCommission        string `json:"it_team_commission"`
	MarketingTeamCommission string `json:"marketing_team_commission"`

	MarketingManager           int64  `json:"marketingmanager"`
	MarketingManagerCommission string `json:"marketingmanagercommission"`

	MarketingTeamLeader           int64  `json:"marketing_team_leader"`
	MarketingTeamLeaderCommission string `json:"marketing_team_leader_commission"`

	OtherName           int64  `json:"other_name"`
	OtherNameCommission string `json:"other_name_commission"`

	BrokerName           string `json:"broker_name"`
	BrokerNameCommission string `json:"broker_name_commission"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LegacyDealActivity struct {
	ID        int64           `json:"id"`
	DealID    int64           `json:"deal_id"`
	UserID    int64           `json:"user_id"`
	LogType   string          `json:"log_type"`
	Remark    json.RawMessage `json:"remark"`
	CreatedAt string          `json:"created_at"`
}

// LegacyData bundles every legacy export file.
type LegacyData struct {
	Clients            []LegacyClient
	Users              []LegacyUser
	Deals              []LegacyDeal
	Pipelines          []LegacyPipeline
	Sources            []LegacySource
	Products           []LegacyProduct
	Labels             []LegacyLabel
	LeadTypes          []LegacyLeadType
	DealStages         []LegacyDealStage
	ServiceCommissions []LegacyServiceCommission
	DealActivities     []LegacyDealActivity
}

// LoadLegacyData reads the legacy JSON exports from a directory, using the
// same file names the old system produced.
func LoadLegacyData(dir string) (*LegacyData, error) {
	data := &LegacyData{}
	files := []struct {
		name string
		dst  interface{}
	}{
		{"clients.json", &data.Clients},
		{"users.json", &data.Users},
		{"deals.json", &data.Deals},
		{"pipelines.json", &data.Pipelines},
		{"sources.json", &data.Sources},
		{"products.json", &data.Products},
		{"labels.json", &data.Labels},
		{"lead_types.json", &data.LeadTypes},
		{"deal_stages.json", &data.DealStages},
		{"service_commissions.json", &data.ServiceCommissions},
		{"deal_activity.json", &data.DealActivities},
	}
	for _, f := range files {
		raw, err := os.ReadFile(filepath.Join(dir, f.name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.name, err)
		}
	}
	return data, nil
}

// parseLegacyTime accepts the timestamp formats seen in the exports and
// falls back to now for anything unparseable.
func parseLegacyTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
