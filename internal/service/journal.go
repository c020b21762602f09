package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledgerfix/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProvenanceSource tags every entry this engine generates, so a later run can
// purge and regenerate its own output by structured match instead of
// free-text patterns.
const ProvenanceSource = "ledger-reconciler/v2"

// balanceTolerance is the maximum acceptable |debit - credit| per entry.
var balanceTolerance = decimal.New(1, -2) // 0.01

// EntryGenerator builds balanced journal entries from corrected billing
// documents.
//
// Sign convention: amounts stored in entry lines are always non-negative. A
// credit note reverses an invoice economically by swapping the debit/credit
// placement of every line, never by storing negative amounts. Downstream
// reporting can therefore sum debit and credit columns without reclassifying.
type EntryGenerator struct {
	accounts *AccountResolver
	now      func() time.Time
	log      zerolog.Logger
}

func NewEntryGenerator(accounts *AccountResolver, log zerolog.Logger) *EntryGenerator {
	return &EntryGenerator{
		accounts: accounts,
		now:      time.Now,
		log:      log,
	}
}

// docLabel returns the human-facing document type label used in entry
// descriptions (kept as issued by the billing workflow).
func docLabel(docType string) string {
	switch docType {
	case model.DocTypeInvoice:
		return "Factura"
	case model.DocTypeCreditNote:
		return "Nota de Crédito"
	default:
		return "Documento"
	}
}

// Generate builds one balanced entry for a corrected document. The entry is
// validated but not persisted. Errors are DocumentErrors wrapping the
// reconciliation taxonomy, except storage failures which pass through.
func (g *EntryGenerator) Generate(ctx context.Context, doc *model.BillingDocument) (*model.JournalEntry, error) {
	accounts, err := g.accounts.ResolveBilling(ctx, doc.TenantID)
	if err != nil {
		if errors.Is(err, ErrMissingAccount) {
			return nil, &DocumentError{DocumentNumber: doc.DocumentNumber, TenantID: doc.TenantID, Err: ErrMissingAccount}
		}
		return nil, err
	}

	reversed := doc.Type == model.DocTypeCreditNote

	customer := doc.CustomerName
	if customer == "" {
		customer = "Cliente"
	}
	label := docLabel(doc.Type)

	lines := []model.EntryLine{
		newLine(accounts.AccountsReceivable, doc.TotalsVes.GrandTotal, false, reversed,
			fmt.Sprintf("%s %s", label, doc.DocumentNumber)),
		newLine(accounts.Revenue, doc.TotalsVes.Subtotal, true, reversed,
			fmt.Sprintf("Venta %s", customer)),
	}

	if doc.TotalsVes.TaxAmount.IsPositive() && accounts.HasVAT {
		lines = append(lines, newLine(accounts.VATPayable, doc.TotalsVes.TaxAmount, true, reversed,
			"IVA Débito Fiscal"))
	}

	date := g.now()
	if doc.IssueDate != nil {
		date = *doc.IssueDate
	} else {
		g.log.Warn().
			Str("document", doc.DocumentNumber).
			Stringer("tenant", doc.TenantID).
			Msg("document has no issue date, dating entry now")
	}

	entry := &model.JournalEntry{
		TenantID:    doc.TenantID,
		Date:        date,
		Description: fmt.Sprintf("%s %s - %s (Bs. %s)", label, doc.DocumentNumber, customer, doc.TotalsVes.GrandTotal.StringFixed(2)),
		Lines:       lines,
		IsAutomatic: true,
		Metadata: model.EntryMetadata{
			Source:            ProvenanceSource,
			BillingDocumentID: doc.ID.String(),
			ControlNumber:     doc.ControlNumber,
			OriginalAmount:    doc.Totals.GrandTotal,
			ExchangeRate:      doc.TotalsVes.ExchangeRate,
		},
	}

	if !entry.IsBalanced(balanceTolerance) {
		g.log.Error().
			Str("document", doc.DocumentNumber).
			Stringer("tenant", doc.TenantID).
			Str("total_debit", entry.TotalDebit().StringFixed(2)).
			Str("total_credit", entry.TotalCredit().StringFixed(2)).
			Msg("generated entry does not balance, rejecting")
		return nil, &DocumentError{DocumentNumber: doc.DocumentNumber, TenantID: doc.TenantID, Err: ErrUnbalancedEntry}
	}

	return entry, nil
}

// newLine places amount on the debit or credit side. creditSide selects the
// natural side for a sale; reversed swaps the placement for credit notes.
func newLine(accountID uuid.UUID, amount decimal.Decimal, creditSide, reversed bool, description string) model.EntryLine {
	line := model.EntryLine{
		AccountID:   accountID,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
		Description: description,
	}
	if creditSide != reversed {
		line.Credit = amount
	} else {
		line.Debit = amount
	}
	return line
}
