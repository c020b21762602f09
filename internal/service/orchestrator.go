package service

import (
	"context"
	"errors"
	"fmt"

	"ledgerfix/internal/repository"
	"ledgerfix/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunOptions scope one reconciliation run.
type RunOptions struct {
	DryRun   bool
	TenantID *uuid.UUID
}

// Reconciler sequences the repair pipeline over historical billing data:
//
//	PURGE -> CORRECT_DOCUMENTS -> REGENERATE_ENTRIES -> REPORT
//
// Each stage is idempotent and independently retryable. Per-document failures
// are logged, counted and skipped; only storage failures abort the run. The
// run is single-threaded and processes documents in ascending issue-date
// order, so repeated runs over unchanged data are reproducible. Concurrent
// runs against the same tenant must be prevented by the caller.
type Reconciler struct {
	docs     repository.BillingDocumentRepository
	orders   repository.OrderRepository
	entries  repository.JournalEntryRepository
	accounts repository.ChartOfAccountRepository

	purger    *LedgerPurger
	corrector *DocumentCorrector
	log       zerolog.Logger
}

func NewReconciler(
	docs repository.BillingDocumentRepository,
	orders repository.OrderRepository,
	entries repository.JournalEntryRepository,
	accounts repository.ChartOfAccountRepository,
	log zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		docs:      docs,
		orders:    orders,
		entries:   entries,
		accounts:  accounts,
		purger:    NewLedgerPurger(entries, log),
		corrector: NewDocumentCorrector(docs, log),
		log:       log,
	}
}

// Run executes the full pipeline and returns the run summary. An error means
// an unrecoverable storage failure; partial progress stays persisted and is
// resolved by re-running.
func (r *Reconciler) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	summary := NewSummary(opts.DryRun, opts.TenantID)

	r.log.Info().
		Bool("dry_run", opts.DryRun).
		Msg("stage 1/3: purging automatic billing entries")
	purged, err := r.purger.Purge(ctx, opts.TenantID, opts.DryRun)
	if err != nil {
		return nil, err
	}
	summary.PurgedMatched = purged.Matched
	summary.PurgedDeleted = purged.Deleted

	r.log.Info().Msg("stage 2/3: correcting document totals from historical rates")
	if err := r.correctDocuments(ctx, opts, summary); err != nil {
		return nil, err
	}

	r.log.Info().Msg("stage 3/3: regenerating journal entries")
	if err := r.regenerateEntries(ctx, opts, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// correctDocuments pages through every issued document, recovers the
// historical rate from its linked order and rewrites the VES totals.
func (r *Reconciler) correctDocuments(ctx context.Context, opts RunOptions, summary *Summary) error {
	page := pagination.New(pagination.DefaultPage, pagination.DefaultLimit)

	for {
		docs, err := r.docs.ListIssued(ctx, opts.TenantID, page)
		if err != nil {
			return fmt.Errorf("failed to list issued documents: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}

		orderIDs := make([]uuid.UUID, 0, len(docs))
		for _, doc := range docs {
			if doc.OrderID != nil {
				orderIDs = append(orderIDs, *doc.OrderID)
			}
		}
		orders, err := r.orders.FindByIDs(ctx, orderIDs)
		if err != nil {
			return fmt.Errorf("failed to load linked orders: %w", err)
		}

		for i := range docs {
			doc := &docs[i]

			if doc.OrderID == nil {
				summary.SkippedNoOrder.Add(doc.DocumentNumber)
				r.log.Warn().
					Str("document", doc.DocumentNumber).
					Stringer("tenant", doc.TenantID).
					Msg("skipping document without order reference")
				continue
			}

			order, ok := orders[*doc.OrderID]
			if !ok {
				summary.SkippedNoOrder.Add(doc.DocumentNumber)
				r.log.Warn().
					Str("document", doc.DocumentNumber).
					Stringer("tenant", doc.TenantID).
					Stringer("order", *doc.OrderID).
					Msg("skipping document, linked order not found")
				continue
			}

			rate := RecoverRate(&order)
			if !rate.Available() {
				summary.SkippedNoRate.Add(doc.DocumentNumber)
				r.log.Warn().
					Str("document", doc.DocumentNumber).
					Stringer("tenant", doc.TenantID).
					Str("order_total", order.TotalAmount.String()).
					Str("order_total_ves", order.TotalAmountVes.String()).
					Msg("skipping document, order carries no usable rate")
				continue
			}

			result, err := r.corrector.Correct(ctx, doc, rate, opts.DryRun)
			if err != nil {
				return err
			}
			if !result.Applied {
				summary.SkippedNotApplicable.Add(doc.DocumentNumber)
				r.log.Info().
					Str("document", doc.DocumentNumber).
					Str("reason", result.Reason).
					Msg("correction not applicable")
				continue
			}
			summary.Fixed++
		}

		page = page.Next()
	}
}

// regenerateEntries rebuilds one balanced entry per corrected document. A
// tenant whose chart lacks a required account is skipped for the remainder of
// the stage.
func (r *Reconciler) regenerateEntries(ctx context.Context, opts RunOptions, summary *Summary) error {
	resolver := NewAccountResolver(r.accounts)
	generator := NewEntryGenerator(resolver, r.log)

	docs, err := r.docs.ListCorrectable(ctx, opts.TenantID)
	if err != nil {
		return fmt.Errorf("failed to list correctable documents: %w", err)
	}

	skipTenants := make(map[uuid.UUID]bool)

	for i := range docs {
		doc := &docs[i]

		if skipTenants[doc.TenantID] {
			summary.SkippedMissingAccounts.Add(doc.DocumentNumber)
			continue
		}

		if doc.TotalsVes.GrandTotal.IsZero() {
			summary.SkippedZeroTotal.Add(doc.DocumentNumber)
			continue
		}

		entry, err := generator.Generate(ctx, doc)
		if err != nil {
			var docErr *DocumentError
			if errors.As(err, &docErr) {
				switch {
				case errors.Is(docErr, ErrMissingAccount):
					skipTenants[doc.TenantID] = true
					summary.SkippedMissingAccounts.Add(doc.DocumentNumber)
					r.log.Warn().
						Stringer("tenant", doc.TenantID).
						Str("document", doc.DocumentNumber).
						Msg("tenant chart lacks required accounts, skipping its remaining documents")
				case errors.Is(docErr, ErrUnbalancedEntry):
					summary.RejectedUnbalanced.Add(doc.DocumentNumber)
				default:
					summary.SkippedNotApplicable.Add(doc.DocumentNumber)
					r.log.Warn().Err(docErr).Msg("skipping document")
				}
				continue
			}
			return fmt.Errorf("failed to generate entry for %s: %w", doc.DocumentNumber, err)
		}

		r.log.Info().
			Str("document", doc.DocumentNumber).
			Str("grand_total_ves", doc.TotalsVes.GrandTotal.StringFixed(2)).
			Str("rate", doc.TotalsVes.ExchangeRate.String()).
			Bool("dry_run", opts.DryRun).
			Msg("regenerating journal entry")

		if !opts.DryRun {
			if err := r.entries.Insert(ctx, entry); err != nil {
				return fmt.Errorf("failed to insert entry for %s: %w", doc.DocumentNumber, err)
			}
		}
		summary.Regenerated++
	}

	return nil
}
