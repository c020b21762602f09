package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountType enum constants
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeIncome    = "income"
	AccountTypeExpense   = "expense"
)

// Well-known account codes of the default chart. Every tenant is expected to
// carry at least the receivable and revenue accounts; the VAT account is
// optional.
const (
	CodeAccountsReceivable = "1102"
	CodeRevenue            = "4101"
	CodeVATPayable         = "2102"
)

// ChartOfAccount is one named ledger account in a tenant's chart. Codes are
// unique per tenant and map semantic roles to opaque account identifiers.
type ChartOfAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_code" json:"tenant_id"`
	Code      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_tenant_code" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultChartOfAccounts returns the seed plan for a new tenant.
func DefaultChartOfAccounts(tenantID uuid.UUID) []ChartOfAccount {
	return []ChartOfAccount{
		{TenantID: tenantID, Code: CodeAccountsReceivable, Name: "Cuentas por Cobrar", Type: AccountTypeAsset},
		{TenantID: tenantID, Code: CodeRevenue, Name: "Ingresos por Ventas", Type: AccountTypeIncome},
		{TenantID: tenantID, Code: CodeVATPayable, Name: "IVA Débito Fiscal", Type: AccountTypeLiability},
	}
}
