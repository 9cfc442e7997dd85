package importer

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one import run.
type Report struct {
	RunID             string    `json:"runId"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
	DealsTotal        int       `json:"dealsTotal"`
	DealsCreated      int       `json:"dealsCreated"`
	SkippedSigned     int       `json:"skippedSigned"`
	Failed            int       `json:"failed"`
	MissingCommission int       `json:"missingCommission"`
	ActivityLogs      int       `json:"activityLogs"`

	// MissingCommissionDeals lists legacy deal ids created without a
	// commission record, for reconciliation follow-up.
	MissingCommissionDeals []int64 `json:"missingCommissionDeals"`
}

func newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}
