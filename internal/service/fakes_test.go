package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"ledgerfix/internal/model"
	"ledgerfix/internal/repository"
	"ledgerfix/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They mirror the ordering and matching semantics
// of the gorm implementations closely enough for pipeline tests.

type fakeDocStore struct {
	docs        []model.BillingDocument
	updateCalls int
}

func (f *fakeDocStore) sorted(docs []model.BillingDocument) []model.BillingDocument {
	out := append([]model.BillingDocument(nil), docs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].IssueDate, out[j].IssueDate
		switch {
		case a == nil && b == nil:
			return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
		case a == nil:
			return true
		case b == nil:
			return false
		case a.Equal(*b):
			return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
		default:
			return a.Before(*b)
		}
	})
	return out
}

func (f *fakeDocStore) ListIssued(_ context.Context, tenantID *uuid.UUID, page pagination.Params) ([]model.BillingDocument, error) {
	var matched []model.BillingDocument
	for _, doc := range f.docs {
		if doc.Status != model.DocStatusIssued {
			continue
		}
		if tenantID != nil && doc.TenantID != *tenantID {
			continue
		}
		matched = append(matched, doc)
	}
	matched = f.sorted(matched)

	if page.Offset >= len(matched) {
		return nil, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], nil
}

func (f *fakeDocStore) ListCorrectable(_ context.Context, tenantID *uuid.UUID) ([]model.BillingDocument, error) {
	var matched []model.BillingDocument
	for _, doc := range f.docs {
		if doc.Status != model.DocStatusIssued || !doc.IsBillingType() {
			continue
		}
		if !doc.TotalsVes.ExchangeRate.GreaterThan(decimal.NewFromInt(1)) {
			continue
		}
		if tenantID != nil && doc.TenantID != *tenantID {
			continue
		}
		matched = append(matched, doc)
	}
	return f.sorted(matched), nil
}

func (f *fakeDocStore) UpdateCorrection(_ context.Context, id uuid.UUID, patch repository.CorrectionUpdate) error {
	f.updateCalls++
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs[i].Totals.Currency = patch.Currency
			f.docs[i].Totals.ExchangeRate = patch.ExchangeRate
			f.docs[i].TotalsVes = patch.TotalsVes
			return nil
		}
	}
	return nil
}

type fakeOrderStore struct {
	orders map[uuid.UUID]model.Order
}

func (f *fakeOrderStore) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Order, error) {
	result := make(map[uuid.UUID]model.Order, len(ids))
	for _, id := range ids {
		if order, ok := f.orders[id]; ok {
			result[id] = order
		}
	}
	return result, nil
}

type fakeAccountStore struct {
	accounts  []model.ChartOfAccount
	listCalls int
}

func (f *fakeAccountStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.ChartOfAccount, error) {
	f.listCalls++
	var matched []model.ChartOfAccount
	for _, account := range f.accounts {
		if account.TenantID == tenantID {
			matched = append(matched, account)
		}
	}
	return matched, nil
}

func (f *fakeAccountStore) Seed(_ context.Context, tenantID uuid.UUID) error {
	for _, account := range model.DefaultChartOfAccounts(tenantID) {
		exists := false
		for _, existing := range f.accounts {
			if existing.TenantID == tenantID && existing.Code == account.Code {
				exists = true
				break
			}
		}
		if !exists {
			account.ID = uuid.New()
			f.accounts = append(f.accounts, account)
		}
	}
	return nil
}

type fakeEntryStore struct {
	entries []model.JournalEntry
	// accounts lets TrialBalance join code/name like the SQL implementation.
	accounts []model.ChartOfAccount
}

func (f *fakeEntryStore) matches(entry model.JournalEntry, filter repository.ProvenanceFilter) bool {
	if !entry.IsAutomatic {
		return false
	}
	if filter.TenantID != nil && entry.TenantID != *filter.TenantID {
		return false
	}
	for _, source := range filter.Sources {
		if entry.Metadata.Source == source {
			return true
		}
	}
	for _, pattern := range filter.DescriptionPatterns {
		if regexp.MustCompile(pattern).MatchString(entry.Description) {
			return true
		}
	}
	return false
}

func (f *fakeEntryStore) CountMatching(_ context.Context, filter repository.ProvenanceFilter) (int64, error) {
	var count int64
	for _, entry := range f.entries {
		if f.matches(entry, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeEntryStore) SampleMatching(_ context.Context, filter repository.ProvenanceFilter, limit int) ([]model.JournalEntry, error) {
	var sample []model.JournalEntry
	for _, entry := range f.entries {
		if f.matches(entry, filter) {
			sample = append(sample, entry)
			if len(sample) == limit {
				break
			}
		}
	}
	return sample, nil
}

func (f *fakeEntryStore) DeleteMatching(_ context.Context, filter repository.ProvenanceFilter) (int64, error) {
	var kept []model.JournalEntry
	var deleted int64
	for _, entry := range f.entries {
		if f.matches(entry, filter) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	f.entries = kept
	return deleted, nil
}

func (f *fakeEntryStore) Insert(_ context.Context, entry *model.JournalEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryStore) TrialBalance(_ context.Context, tenantID uuid.UUID) ([]repository.TrialBalanceRow, error) {
	byAccount := make(map[uuid.UUID]*repository.TrialBalanceRow)
	for _, entry := range f.entries {
		if entry.TenantID != tenantID {
			continue
		}
		for _, line := range entry.Lines {
			row, ok := byAccount[line.AccountID]
			if !ok {
				row = &repository.TrialBalanceRow{
					AccountID:   line.AccountID,
					TotalDebit:  decimal.Zero,
					TotalCredit: decimal.Zero,
				}
				for _, account := range f.accounts {
					if account.ID == line.AccountID {
						row.Code = account.Code
						row.Name = account.Name
					}
				}
				byAccount[line.AccountID] = row
			}
			row.TotalDebit = row.TotalDebit.Add(line.Debit)
			row.TotalCredit = row.TotalCredit.Add(line.Credit)
		}
	}

	rows := make([]repository.TrialBalanceRow, 0, len(byAccount))
	for _, row := range byAccount {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}
