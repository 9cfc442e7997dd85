// models/service_commission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceCommission is the per-deal breakdown of commission shares. Each
// role slot pairs a user reference with a numeric amount; unset slots stay
// zero. Exactly one commission belongs to one deal.
type ServiceCommission struct {
	ID       primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Deal     *primitive.ObjectID `json:"deal_id,omitempty" bson:"deal_id,omitempty"`
	Contract *primitive.ObjectID `json:"contract_id,omitempty" bson:"contract_id,omitempty"`

	FinanceAmount        float64 `json:"finance_amount" bson:"finance_amount"`
	BankCommission       float64 `json:"bank_commission" bson:"bank_commission"`
	CustomerCommission   float64 `json:"customer_commission" bson:"customer_commission"`
	WithVATCommission    float64 `json:"with_vat_commission" bson:"with_vat_commission"`
	WithoutVATCommission float64 `json:"without_vat_commission" bson:"without_vat_commission"`

	HODSale           *primitive.ObjectID `json:"hodsale,omitempty" bson:"hodsale,omitempty"`
	HODSaleCommission float64             `json:"hodsalecommission" bson:"hodsalecommission"`

	SaleManager           *primitive.ObjectID `json:"salemanager,omitempty" bson:"salemanager,omitempty"`
	SaleManagerCommission float64             `json:"salemanagercommission" bson:"salemanagercommission"`

	Coordinator           *primitive.ObjectID `json:"coordinator,omitempty" bson:"coordinator,omitempty"`
	CoordinatorCommission float64             `json:"coordinator_commission" bson:"coordinator_commission"`

	TeamLeader           *primitive.ObjectID `json:"team_leader,omitempty" bson:"team_leader,omitempty"`
	TeamLeaderCommission float64             `json:"team_leader_commission" bson:"team_leader_commission"`

	SalesAgent           *primitive.ObjectID `json:"salesagent,omitempty" bson:"salesagent,omitempty"`
	SalesAgentCommission float64             `json:"salesagent_commission" bson:"salesagent_commission"`

	TeamLeaderOne           *primitive.ObjectID `json:"team_leader_one,omitempty" bson:"team_leader_one,omitempty"`
	TeamLeaderOneCommission float64             `json:"team_leader_one_commission" bson:"team_leader_one_commission"`

	SaleAgentOne           *primitive.ObjectID `json:"sale_agent_one,omitempty" bson:"sale_agent_one,omitempty"`
	SaleAgentOneCommission float64             `json:"sale_agent_one_commission" bson:"sale_agent_one_commission"`

	SaleManagerRef           *primitive.ObjectID `json:"salemanagerref,omitempty" bson:"salemanagerref,omitempty"`
	SaleManagerRefCommission float64             `json:"salemanagerrefcommission" bson:"salemanagerrefcommission"`

	AgentRef        *primitive.ObjectID `json:"agentref,omitempty" bson:"agentref,omitempty"`
	AgentCommission float64             `json:"agent_commission" bson:"agent_commission"`

	TSHOD           *primitive.ObjectID `json:"ts_hod,omitempty" bson:"ts_hod,omitempty"`
	TSHODCommission float64             `json:"ts_hod_commision" bson:"ts_hod_commision"`

	TSTeamLeader           *primitive.ObjectID `json:"ts_team_leader,omitempty" bson:"ts_team_leader,omitempty"`
	TSTeamLeaderCommission float64             `json:"ts_team_leader_commission" bson:"ts_team_leader_commission"`

	TSAgent           *primitive.ObjectID `json:"tsagent,omitempty" bson:"tsagent,omitempty"`
	TSAgentCommission float64             `json:"tsagent_commission" bson:"tsagent_commission"`

	ITTeamCommission        float64 `json:"it_team_commission" bson:"it_team_commission"`
	MarketingTeamCommission float64 `json:"marketing_team_commission" bson:"marketing_team_commission"`

	MarketingManager           *primitive.ObjectID `json:"marketingmanager,omitempty" bson:"marketingmanager,omitempty"`
	MarketingManagerCommission float64             `json:"marketingmanagercommission" bson:"marketingmanagercommission"`

	MarketingTeamLeader           *primitive.ObjectID `json:"marketing_team_leader,omitempty" bson:"marketing_team_leader,omitempty"`
	MarketingTeamLeaderCommission float64             `json:"marketing_team_leader_commission" bson:"marketing_team_leader_commission"`

	OtherName           *primitive.ObjectID `json:"other_name,omitempty" bson:"other_name,omitempty"`
	OtherNameCommission float64             `json:"other_name_commission" bson:"other_name_commission"`

	BrokerName           string  `json:"broker_name,omitempty" bson:"broker_name,omitempty"`
	BrokerNameCommission float64 `json:"broker_name_commission" bson:"broker_name_commission"`

	DelStatus bool      `json:"delstatus" bson:"delstatus"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Total sums every role-based commission share.
func (sc *ServiceCommission) Total() float64 {
	return sc.HODSaleCommission +
		sc.SaleManagerCommission +
		sc.CoordinatorCommission +
		sc.TeamLeaderCommission +
		sc.SalesAgentCommission +
		sc.TeamLeaderOneCommission +
		sc.SaleAgentOneCommission +
		sc.SaleManagerRefCommission +
		sc.AgentCommission +
		sc.TSHODCommission +
		sc.TSTeamLeaderCommission +
		sc.TSAgentCommission +
		sc.ITTeamCommission +
		sc.MarketingTeamCommission +
		sc.MarketingManagerCommission +
		sc.MarketingTeamLeaderCommission +
		sc.OtherNameCommission +
		sc.BrokerNameCommission
}
