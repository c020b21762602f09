package service

import (
	"context"

	"ledgerfix/internal/model"
	"ledgerfix/internal/repository"

	"github.com/google/uuid"
)

// AccountResolver maps semantic account codes to tenant-specific ledger
// account ids, loading each tenant's chart at most once. The cache lives for
// one orchestrator run; construct a fresh resolver per run.
type AccountResolver struct {
	repo  repository.ChartOfAccountRepository
	cache map[uuid.UUID]map[string]uuid.UUID
}

func NewAccountResolver(repo repository.ChartOfAccountRepository) *AccountResolver {
	return &AccountResolver{
		repo:  repo,
		cache: make(map[uuid.UUID]map[string]uuid.UUID),
	}
}

// Resolve returns the account id for a tenant's code. The boolean reports
// whether the code exists; the error is only non-nil on storage failure.
func (r *AccountResolver) Resolve(ctx context.Context, tenantID uuid.UUID, code string) (uuid.UUID, bool, error) {
	byCode, ok := r.cache[tenantID]
	if !ok {
		accounts, err := r.repo.ListByTenant(ctx, tenantID)
		if err != nil {
			return uuid.Nil, false, err
		}
		byCode = make(map[string]uuid.UUID, len(accounts))
		for _, account := range accounts {
			byCode[account.Code] = account.ID
		}
		r.cache[tenantID] = byCode
	}

	id, found := byCode[code]
	return id, found, nil
}

// ResolvedAccounts holds the account ids a billing entry posts to. VATPayable
// is uuid.Nil when the tenant has no VAT account.
type ResolvedAccounts struct {
	AccountsReceivable uuid.UUID
	Revenue            uuid.UUID
	VATPayable         uuid.UUID
	HasVAT             bool
}

// ResolveBilling resolves the accounts a billing document's entry requires.
// Missing required codes yield ErrMissingAccount; the optional VAT account is
// simply reported absent.
func (r *AccountResolver) ResolveBilling(ctx context.Context, tenantID uuid.UUID) (ResolvedAccounts, error) {
	var resolved ResolvedAccounts

	ar, ok, err := r.Resolve(ctx, tenantID, model.CodeAccountsReceivable)
	if err != nil {
		return resolved, err
	}
	if !ok {
		return resolved, ErrMissingAccount
	}

	revenue, ok, err := r.Resolve(ctx, tenantID, model.CodeRevenue)
	if err != nil {
		return resolved, err
	}
	if !ok {
		return resolved, ErrMissingAccount
	}

	vat, hasVAT, err := r.Resolve(ctx, tenantID, model.CodeVATPayable)
	if err != nil {
		return resolved, err
	}

	resolved.AccountsReceivable = ar
	resolved.Revenue = revenue
	resolved.VATPayable = vat
	resolved.HasVAT = hasVAT
	return resolved, nil
}
