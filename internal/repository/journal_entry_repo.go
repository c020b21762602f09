package repository

import (
	"context"

	"ledgerfix/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProvenanceFilter selects automatically generated entries by their origin:
// either a structured metadata source tag or, for entries created before the
// tag existed, a legacy free-text description pattern (POSIX regex).
type ProvenanceFilter struct {
	Sources             []string
	DescriptionPatterns []string
	TenantID            *uuid.UUID
}

// TrialBalanceRow is one account's aggregated debit/credit totals.
type TrialBalanceRow struct {
	AccountID   uuid.UUID       `gorm:"column:account_id"`
	Code        string          `gorm:"column:code"`
	Name        string          `gorm:"column:name"`
	TotalDebit  decimal.Decimal `gorm:"column:total_debit"`
	TotalCredit decimal.Decimal `gorm:"column:total_credit"`
}

type JournalEntryRepository interface {
	CountMatching(ctx context.Context, filter ProvenanceFilter) (int64, error)
	// SampleMatching returns up to limit matching entries for reporting.
	SampleMatching(ctx context.Context, filter ProvenanceFilter, limit int) ([]model.JournalEntry, error)
	DeleteMatching(ctx context.Context, filter ProvenanceFilter) (int64, error)
	Insert(ctx context.Context, entry *model.JournalEntry) error
	// TrialBalance aggregates every entry line of one tenant per account.
	TrialBalance(ctx context.Context, tenantID uuid.UUID) ([]TrialBalanceRow, error)
}

type journalEntryRepository struct {
	db *gorm.DB
}

func NewJournalEntryRepository(db *gorm.DB) JournalEntryRepository {
	return &journalEntryRepository{db: db}
}

func (r *journalEntryRepository) matching(ctx context.Context, filter ProvenanceFilter) *gorm.DB {
	db := GetDB(ctx, r.db)

	query := db.Model(&model.JournalEntry{}).Where("is_automatic = ?", true)

	provenance := db.Where("metadata ->> 'source' IN ?", filter.Sources)
	for _, pattern := range filter.DescriptionPatterns {
		provenance = provenance.Or("description ~ ?", pattern)
	}
	query = query.Where(provenance)

	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	return query
}

func (r *journalEntryRepository) CountMatching(ctx context.Context, filter ProvenanceFilter) (int64, error) {
	var count int64
	if err := r.matching(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *journalEntryRepository) SampleMatching(ctx context.Context, filter ProvenanceFilter, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.matching(ctx, filter).
		Order("date asc, id asc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *journalEntryRepository) DeleteMatching(ctx context.Context, filter ProvenanceFilter) (int64, error) {
	result := r.matching(ctx, filter).Delete(&model.JournalEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *journalEntryRepository) Insert(ctx context.Context, entry *model.JournalEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *journalEntryRepository) TrialBalance(ctx context.Context, tenantID uuid.UUID) ([]TrialBalanceRow, error) {
	query := `
		SELECT
			a.id AS account_id,
			a.code AS code,
			a.name AS name,
			COALESCE(SUM((l ->> 'debit')::numeric), 0) AS total_debit,
			COALESCE(SUM((l ->> 'credit')::numeric), 0) AS total_credit
		FROM journal_entries e
		CROSS JOIN LATERAL jsonb_array_elements(e.lines) AS l
		JOIN chart_of_accounts a ON a.id = (l ->> 'account_id')::uuid
		WHERE e.tenant_id = $1
		GROUP BY a.id, a.code, a.name
		ORDER BY a.code
	`

	var rows []TrialBalanceRow
	if err := GetDB(ctx, r.db).Raw(query, tenantID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
