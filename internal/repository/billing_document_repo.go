package repository

import (
	"context"

	"ledgerfix/internal/model"
	"ledgerfix/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CorrectionUpdate is the field-level patch the corrector applies to a
// document. Reference-currency totals are deliberately not part of it.
type CorrectionUpdate struct {
	Currency     string
	ExchangeRate decimal.Decimal
	TotalsVes    model.DocumentTotalsVes
}

type BillingDocumentRepository interface {
	// ListIssued returns issued documents ordered by issue date then id, one
	// page at a time. A nil tenantID means all tenants.
	ListIssued(ctx context.Context, tenantID *uuid.UUID, page pagination.Params) ([]model.BillingDocument, error)
	// ListCorrectable returns issued billing-type documents whose local
	// totals carry a real recovered rate (> 1, i.e. not a 1:1 placeholder),
	// ordered by issue date then id.
	ListCorrectable(ctx context.Context, tenantID *uuid.UUID) ([]model.BillingDocument, error)
	// UpdateCorrection patches only the currency/rate/VES columns of one document.
	UpdateCorrection(ctx context.Context, id uuid.UUID, patch CorrectionUpdate) error
}

type billingDocumentRepository struct {
	db *gorm.DB
}

func NewBillingDocumentRepository(db *gorm.DB) BillingDocumentRepository {
	return &billingDocumentRepository{db: db}
}

func (r *billingDocumentRepository) ListIssued(ctx context.Context, tenantID *uuid.UUID, page pagination.Params) ([]model.BillingDocument, error) {
	var docs []model.BillingDocument

	query := GetDB(ctx, r.db).
		Where("status = ?", model.DocStatusIssued)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}

	err := query.
		Order("issue_date asc NULLS FIRST, id asc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *billingDocumentRepository) ListCorrectable(ctx context.Context, tenantID *uuid.UUID) ([]model.BillingDocument, error) {
	var docs []model.BillingDocument

	query := GetDB(ctx, r.db).
		Where("status = ?", model.DocStatusIssued).
		Where("type IN ?", []string{model.DocTypeInvoice, model.DocTypeCreditNote, model.DocTypeDeliveryNote}).
		Where("totals_ves_exchange_rate > ?", 1)
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}

	err := query.
		Order("issue_date asc NULLS FIRST, id asc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *billingDocumentRepository) UpdateCorrection(ctx context.Context, id uuid.UUID, patch CorrectionUpdate) error {
	return GetDB(ctx, r.db).
		Model(&model.BillingDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"totals_currency":          patch.Currency,
			"totals_exchange_rate":     patch.ExchangeRate,
			"totals_ves_subtotal":      patch.TotalsVes.Subtotal,
			"totals_ves_tax_amount":    patch.TotalsVes.TaxAmount,
			"totals_ves_grand_total":   patch.TotalsVes.GrandTotal,
			"totals_ves_exchange_rate": patch.TotalsVes.ExchangeRate,
		}).Error
}
