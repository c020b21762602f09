package service

import (
	"context"
	"testing"

	"ledgerfix/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartFor(tenantID uuid.UUID, codes ...string) []model.ChartOfAccount {
	accounts := make([]model.ChartOfAccount, 0, len(codes))
	for _, code := range codes {
		accounts = append(accounts, model.ChartOfAccount{
			ID:       uuid.New(),
			TenantID: tenantID,
			Code:     code,
		})
	}
	return accounts
}

func TestResolveCachesPerTenant(t *testing.T) {
	tenantID := uuid.New()
	store := &fakeAccountStore{accounts: chartFor(tenantID, model.CodeAccountsReceivable, model.CodeRevenue)}
	resolver := NewAccountResolver(store)

	_, ok, err := resolver.Resolve(context.Background(), tenantID, model.CodeAccountsReceivable)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = resolver.Resolve(context.Background(), tenantID, model.CodeRevenue)
	require.NoError(t, err)
	require.True(t, ok)

	// one store round-trip per tenant per run
	assert.Equal(t, 1, store.listCalls)
}

func TestResolveUnknownCode(t *testing.T) {
	tenantID := uuid.New()
	resolver := NewAccountResolver(&fakeAccountStore{accounts: chartFor(tenantID, model.CodeRevenue)})

	id, ok, err := resolver.Resolve(context.Background(), tenantID, model.CodeAccountsReceivable)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestResolveBilling(t *testing.T) {
	t.Run("full chart", func(t *testing.T) {
		tenantID := uuid.New()
		store := &fakeAccountStore{accounts: chartFor(tenantID,
			model.CodeAccountsReceivable, model.CodeRevenue, model.CodeVATPayable)}
		resolver := NewAccountResolver(store)

		resolved, err := resolver.ResolveBilling(context.Background(), tenantID)

		require.NoError(t, err)
		assert.True(t, resolved.HasVAT)
		assert.NotEqual(t, uuid.Nil, resolved.AccountsReceivable)
		assert.NotEqual(t, uuid.Nil, resolved.Revenue)
		assert.NotEqual(t, uuid.Nil, resolved.VATPayable)
	})

	t.Run("missing VAT account is not an error", func(t *testing.T) {
		tenantID := uuid.New()
		resolver := NewAccountResolver(&fakeAccountStore{accounts: chartFor(tenantID,
			model.CodeAccountsReceivable, model.CodeRevenue)})

		resolved, err := resolver.ResolveBilling(context.Background(), tenantID)

		require.NoError(t, err)
		assert.False(t, resolved.HasVAT)
	})

	t.Run("missing required account", func(t *testing.T) {
		tenantID := uuid.New()
		resolver := NewAccountResolver(&fakeAccountStore{accounts: chartFor(tenantID, model.CodeVATPayable)})

		_, err := resolver.ResolveBilling(context.Background(), tenantID)

		assert.ErrorIs(t, err, ErrMissingAccount)
	})
}
