package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryLine is one debit or credit posted to an account. Amounts are always
// non-negative; a reversal swaps the debit/credit placement instead of
// storing a negative amount.
type EntryLine struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryMetadata is the structured provenance tag on automatically generated
// entries. Source identifies the generator, so a later run can find and
// replace its own output without free-text matching.
type EntryMetadata struct {
	Source            string          `json:"source,omitempty"`
	BillingDocumentID string          `json:"billing_document_id,omitempty"`
	ControlNumber     string          `json:"control_number,omitempty"`
	OriginalAmount    decimal.Decimal `json:"original_amount"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	GeneratedAt       *time.Time      `json:"generated_at,omitempty"`
}

// JournalEntry is one balanced double-entry posting in a tenant's ledger.
type JournalEntry struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Date        time.Time     `gorm:"not null;index" json:"date"`
	Description string        `gorm:"type:text" json:"description"`
	Lines       []EntryLine   `gorm:"type:jsonb;serializer:json" json:"lines"`
	IsAutomatic bool          `gorm:"not null;default:false;index" json:"is_automatic"`
	Metadata    EntryMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// IsBalanced reports whether total debits equal total credits within the
// given tolerance.
func (e *JournalEntry) IsBalanced(tolerance decimal.Decimal) bool {
	return e.TotalDebit().Sub(e.TotalCredit()).Abs().LessThanOrEqual(tolerance)
}
