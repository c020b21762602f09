package service

import (
	"context"
	"fmt"

	"ledgerfix/internal/model"
	"ledgerfix/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// knownSources are the provenance tags of every automatic billing-entry
// generator that has ever written to the ledger.
var knownSources = []string{
	ProvenanceSource,
	"migrate-fix-accounting-entries",
}

// legacyDescriptionPatterns match automatic entries created before the
// structured provenance tag existed: the original order-sale, cost-of-sale
// and collection postings plus the issuance listener's document headers.
var legacyDescriptionPatterns = []string{
	`^Asiento automático por venta de orden`,
	`^Asiento de costo de venta para la orden`,
	`^Asiento automático por cobro de orden`,
	`^(Factura|Nota de Crédito|Documento) [A-Z]+\d+`,
}

const purgeSampleSize = 5

// PurgeResult reports what a purge pass matched and (unless dry-run) deleted.
type PurgeResult struct {
	Matched int64
	Deleted int64
	Sample  []model.JournalEntry
	DryRun  bool
}

// LedgerPurger removes previously generated automatic billing entries by
// provenance before regeneration. Purging everything the generators ever
// wrote, legacy included, is what makes the pipeline re-runnable: a stale
// entry with a wrong rate left behind silently breaks trial-balance reports.
type LedgerPurger struct {
	entries repository.JournalEntryRepository
	log     zerolog.Logger
}

func NewLedgerPurger(entries repository.JournalEntryRepository, log zerolog.Logger) *LedgerPurger {
	return &LedgerPurger{entries: entries, log: log}
}

// BillingProvenanceFilter is the match every purge pass uses, optionally
// scoped to one tenant.
func BillingProvenanceFilter(tenantID *uuid.UUID) repository.ProvenanceFilter {
	return repository.ProvenanceFilter{
		Sources:             knownSources,
		DescriptionPatterns: legacyDescriptionPatterns,
		TenantID:            tenantID,
	}
}

// Purge deletes all matching entries, or with dryRun only reports the exact
// count and a representative sample with zero mutation.
func (p *LedgerPurger) Purge(ctx context.Context, tenantID *uuid.UUID, dryRun bool) (PurgeResult, error) {
	filter := BillingProvenanceFilter(tenantID)

	matched, err := p.entries.CountMatching(ctx, filter)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("failed to count automatic entries: %w", err)
	}

	result := PurgeResult{Matched: matched, DryRun: dryRun}
	if matched == 0 {
		p.log.Info().Msg("no automatic billing entries to purge")
		return result, nil
	}

	sample, err := p.entries.SampleMatching(ctx, filter, purgeSampleSize)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("failed to sample automatic entries: %w", err)
	}
	result.Sample = sample

	for _, entry := range sample {
		p.log.Info().
			Stringer("tenant", entry.TenantID).
			Str("description", entry.Description).
			Time("date", entry.Date).
			Msg("purge candidate")
	}

	if dryRun {
		p.log.Info().Int64("matched", matched).Msg("dry run, nothing deleted")
		return result, nil
	}

	deleted, err := p.entries.DeleteMatching(ctx, filter)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("failed to delete automatic entries: %w", err)
	}
	result.Deleted = deleted

	p.log.Info().Int64("deleted", deleted).Msg("purged automatic billing entries")
	return result, nil
}
