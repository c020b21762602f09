package service

import (
	"context"
	"fmt"

	"ledgerfix/internal/model"
	"ledgerfix/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// round2 rounds to 2 decimal places, half away from zero. Applied
// independently per field so repeated corrections never compound drift.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CorrectionResult reports what the corrector did with one document.
type CorrectionResult struct {
	Applied   bool
	Reason    string // set when not applied
	TotalsVes model.DocumentTotalsVes
}

// DocumentCorrector rewrites a document's local-currency totals from a
// recovered historical rate. Only the currency marker, the exchange rate and
// the VES totals ever change; reference-currency totals are immutable.
type DocumentCorrector struct {
	docs repository.BillingDocumentRepository
	log  zerolog.Logger
}

func NewDocumentCorrector(docs repository.BillingDocumentRepository, log zerolog.Logger) *DocumentCorrector {
	return &DocumentCorrector{docs: docs, log: log}
}

// Correct applies the recovered rate to one document. It is a reported no-op
// for unavailable rates, non-issued documents and non-billing types. With
// dryRun the computed totals are returned but nothing is persisted.
func (c *DocumentCorrector) Correct(ctx context.Context, doc *model.BillingDocument, rate RecoveredRate, dryRun bool) (CorrectionResult, error) {
	if !rate.Available() {
		return CorrectionResult{Reason: "rate unavailable"}, nil
	}
	if doc.Status != model.DocStatusIssued {
		return CorrectionResult{Reason: fmt.Sprintf("status is %s, not issued", doc.Status)}, nil
	}
	if !doc.IsBillingType() {
		return CorrectionResult{Reason: fmt.Sprintf("type %s does not generate entries", doc.Type)}, nil
	}

	totalsVes := model.DocumentTotalsVes{
		Subtotal:     round2(doc.Totals.Subtotal.Mul(rate.Value)),
		TaxAmount:    round2(doc.Totals.TaxTotal().Mul(rate.Value)),
		GrandTotal:   round2(doc.Totals.GrandTotal.Mul(rate.Value)),
		ExchangeRate: round2(rate.Value),
	}

	c.log.Info().
		Str("document", doc.DocumentNumber).
		Stringer("tenant", doc.TenantID).
		Str("rate_source", string(rate.Source)).
		Str("rate", totalsVes.ExchangeRate.String()).
		Str("grand_total_usd", doc.Totals.GrandTotal.StringFixed(2)).
		Str("grand_total_ves", totalsVes.GrandTotal.StringFixed(2)).
		Bool("dry_run", dryRun).
		Msg("correcting document totals")

	if !dryRun {
		patch := repository.CorrectionUpdate{
			Currency:     model.ReferenceCurrency,
			ExchangeRate: round2(rate.Value),
			TotalsVes:    totalsVes,
		}
		if err := c.docs.UpdateCorrection(ctx, doc.ID, patch); err != nil {
			return CorrectionResult{}, fmt.Errorf("failed to update document %s: %w", doc.DocumentNumber, err)
		}
	}

	doc.Totals.Currency = model.ReferenceCurrency
	doc.Totals.ExchangeRate = round2(rate.Value)
	doc.TotalsVes = totalsVes

	return CorrectionResult{Applied: true, TotalsVes: totalsVes}, nil
}
