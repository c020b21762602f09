package service

import (
	"testing"

	"ledgerfix/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestRecoverRateFromOrderTotals(t *testing.T) {
	order := &model.Order{
		TotalAmount:    dec("100"),
		TotalAmountVes: dec("3600"),
	}

	rate := RecoverRate(order)

	require.True(t, rate.Available())
	assert.Equal(t, RateSourceOrderTotals, rate.Source)
	assert.True(t, rate.Value.Equal(dec("36")), "expected 36, got %s", rate.Value)
}

func TestRecoverRateFallsBackToFirstPaymentRecord(t *testing.T) {
	order := &model.Order{
		TotalAmount:    dec("100"),
		TotalAmountVes: decimal.Zero,
		PaymentRecords: []model.PaymentRecord{
			{Amount: decimal.Zero, AmountVes: dec("500"), Method: "cash"},
			{Amount: dec("50"), AmountVes: dec("2000"), Method: "transfer"},
			{Amount: dec("50"), AmountVes: dec("2500"), Method: "card"},
		},
	}

	rate := RecoverRate(order)

	require.True(t, rate.Available())
	assert.Equal(t, RateSourcePaymentRecord, rate.Source)
	// first record with both amounts wins, never an average
	assert.True(t, rate.Value.Equal(dec("40")), "expected 40, got %s", rate.Value)
}

func TestRecoverRateUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		order *model.Order
	}{
		{"nil order", nil},
		{"zero totals, no payments", &model.Order{}},
		{
			"negative totals",
			&model.Order{TotalAmount: dec("-100"), TotalAmountVes: dec("-3600")},
		},
		{
			"payments missing local amount",
			&model.Order{
				PaymentRecords: []model.PaymentRecord{
					{Amount: dec("100"), AmountVes: decimal.Zero},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := RecoverRate(tt.order)
			assert.False(t, rate.Available())
		})
	}
}

func TestRecoverRatePrefersTotalsOverPayments(t *testing.T) {
	order := &model.Order{
		TotalAmount:    dec("116"),
		TotalAmountVes: dec("4176"),
		PaymentRecords: []model.PaymentRecord{
			{Amount: dec("116"), AmountVes: dec("5000")},
		},
	}

	rate := RecoverRate(order)

	require.True(t, rate.Available())
	assert.Equal(t, RateSourceOrderTotals, rate.Source)
	assert.True(t, rate.Value.Equal(dec("36")))
}
