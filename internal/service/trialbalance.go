package service

import (
	"context"
	"fmt"

	"ledgerfix/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrialBalanceReport aggregates a tenant's ledger per account and checks the
// double-entry invariant over the whole book.
type TrialBalanceReport struct {
	TenantID    uuid.UUID                    `json:"tenant_id"`
	Rows        []repository.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal              `json:"total_debit"`
	TotalCredit decimal.Decimal              `json:"total_credit"`
	Balanced    bool                         `json:"balanced"`
}

// TrialBalanceService produces per-tenant trial balance reports, the
// operator's post-run health check.
type TrialBalanceService struct {
	entries repository.JournalEntryRepository
}

func NewTrialBalanceService(entries repository.JournalEntryRepository) *TrialBalanceService {
	return &TrialBalanceService{entries: entries}
}

// Report computes the trial balance for one tenant. The book is balanced when
// total debits equal total credits within the same tolerance applied to
// individual entries.
func (s *TrialBalanceService) Report(ctx context.Context, tenantID uuid.UUID) (*TrialBalanceReport, error) {
	rows, err := s.entries.TrialBalance(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	report := &TrialBalanceReport{
		TenantID:    tenantID,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		report.TotalDebit = report.TotalDebit.Add(row.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(row.TotalCredit)
	}
	report.Balanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThanOrEqual(balanceTolerance)

	return report, nil
}
