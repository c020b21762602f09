package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is one payment captured against an order. Records that carry
// both the reference-currency and local-currency amounts implicitly encode the
// exchange rate at payment time.
type PaymentRecord struct {
	Amount    decimal.Decimal `json:"amount"`
	AmountVes decimal.Decimal `json:"amount_ves"`
	Method    string          `json:"method"`
}

// Order is the sales order a billing document was issued from. It is the
// authoritative source of the historical exchange rate: at sale time the
// storefront recorded both TotalAmount (USD) and TotalAmountVes (VES).
type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`
	TotalAmountVes decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount_ves"`
	PaymentRecords []PaymentRecord `gorm:"type:jsonb;serializer:json" json:"payment_records"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
