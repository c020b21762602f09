package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Per-document reconciliation errors. All of these are caught locally,
// counted and reported; only storage connectivity failures abort a run.
var (
	// ErrMissingReference is returned when a document's linked order does
	// not exist (or the document carries no order reference at all).
	ErrMissingReference = errors.New("linked order not found")

	// ErrRateUnavailable is returned when no positive historical exchange
	// rate can be recovered from the linked order.
	ErrRateUnavailable = errors.New("historical exchange rate unavailable")

	// ErrMissingAccount is returned when a required chart-of-accounts code
	// does not resolve for a tenant. The tenant's remaining documents are
	// skipped for the run; a substitute account is never fabricated.
	ErrMissingAccount = errors.New("required ledger account not found")

	// ErrUnbalancedEntry is returned when a generated entry's debits and
	// credits differ beyond tolerance. It indicates an internal logic defect
	// and the entry is never persisted.
	ErrUnbalancedEntry = errors.New("journal entry does not balance")
)

// DocumentError wraps a per-document failure with identifying detail for the
// run summary.
type DocumentError struct {
	DocumentNumber string
	TenantID       uuid.UUID
	Err            error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s (tenant %s): %v", e.DocumentNumber, e.TenantID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
