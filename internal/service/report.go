package service

import (
	"github.com/google/uuid"
)

// maxSamples bounds the document numbers kept per summary category.
const maxSamples = 5

// Counter counts one summary category and keeps a bounded sample of affected
// document numbers.
type Counter struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples,omitempty"`
}

// Add counts one document, keeping its number while the sample has room.
func (c *Counter) Add(documentNumber string) {
	c.Count++
	if len(c.Samples) < maxSamples {
		c.Samples = append(c.Samples, documentNumber)
	}
}

// Summary is the final report of one reconciliation run. A dry run produces
// the same shape as a live run's pre-mutation report.
type Summary struct {
	DryRun   bool       `json:"dry_run"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`

	PurgedMatched int64 `json:"purged_matched"`
	PurgedDeleted int64 `json:"purged_deleted"`

	Fixed       int `json:"fixed"`
	Regenerated int `json:"regenerated"`

	SkippedNoOrder         Counter `json:"skipped_no_order"`
	SkippedNoRate          Counter `json:"skipped_no_rate"`
	SkippedNotApplicable   Counter `json:"skipped_not_applicable"`
	SkippedZeroTotal       Counter `json:"skipped_zero_total"`
	SkippedMissingAccounts Counter `json:"skipped_missing_accounts"`
	RejectedUnbalanced     Counter `json:"rejected_unbalanced"`
}

// NewSummary initializes a summary for one run.
func NewSummary(dryRun bool, tenantID *uuid.UUID) *Summary {
	return &Summary{DryRun: dryRun, TenantID: tenantID}
}
