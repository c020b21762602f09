package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType enum constants
const (
	DocTypeInvoice      = "invoice"
	DocTypeCreditNote   = "credit_note"
	DocTypeDeliveryNote = "delivery_note"
)

// DocumentStatus enum constants
const (
	DocStatusDraft  = "draft"
	DocStatusIssued = "issued"
	DocStatusVoided = "voided"
)

// ReferenceCurrency is the stable currency all document totals are primarily
// denominated in. Local-currency (VES) amounts are derived from it via the
// exchange rate in effect at sale time.
const ReferenceCurrency = "USD"

// TaxLine is one tax component of a document's totals (e.g. IVA, IGTF).
type TaxLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DocumentTotals holds the reference-currency totals of a billing document.
type DocumentTotals struct {
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"subtotal"`
	Taxes        []TaxLine       `gorm:"type:jsonb;serializer:json" json:"taxes"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"grand_total"`
	Currency     string          `gorm:"type:varchar(3)" json:"currency"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"exchange_rate"`
}

// TaxTotal sums all tax components.
func (t DocumentTotals) TaxTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, tax := range t.Taxes {
		sum = sum.Add(tax.Amount)
	}
	return sum
}

// DocumentTotalsVes holds the local-currency totals, derived from
// DocumentTotals at the recorded exchange rate. An ExchangeRate of 0 or 1
// means the document was persisted before the rate was known and still needs
// correction.
type DocumentTotalsVes struct {
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"subtotal"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"grand_total"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"exchange_rate"`
}

// BillingDocument is a fiscal document (invoice, credit note, delivery note)
// issued by the billing workflow. The reconciliation engine only ever touches
// Totals.Currency, Totals.ExchangeRate and TotalsVes; reference-currency
// amounts are immutable once issued.
type BillingDocument struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Type           string            `gorm:"type:varchar(20);not null;index" json:"type"`
	DocumentNumber string            `gorm:"type:varchar(30);not null;index" json:"document_number"`
	ControlNumber  string            `gorm:"type:varchar(30)" json:"control_number"`
	Status         string            `gorm:"type:varchar(20);not null;index" json:"status"`
	IssueDate      *time.Time        `gorm:"index" json:"issue_date"`
	CustomerName   string            `gorm:"type:varchar(255)" json:"customer_name"`
	Totals         DocumentTotals    `gorm:"embedded;embeddedPrefix:totals_" json:"totals"`
	TotalsVes      DocumentTotalsVes `gorm:"embedded;embeddedPrefix:totals_ves_" json:"totals_ves"`
	OrderID        *uuid.UUID        `gorm:"type:uuid;index" json:"order_id"` // source order reference
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// IsBillingType reports whether the document type participates in automatic
// journal entry generation.
func (d *BillingDocument) IsBillingType() bool {
	switch d.Type {
	case DocTypeInvoice, DocTypeCreditNote, DocTypeDeliveryNote:
		return true
	}
	return false
}
