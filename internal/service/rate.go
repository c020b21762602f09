package service

import (
	"ledgerfix/internal/model"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a recovered rate came from.
type RateSource string

const (
	RateSourceOrderTotals   RateSource = "order_totals"
	RateSourcePaymentRecord RateSource = "payment_record"
	RateSourceNone          RateSource = ""
)

// RecoveredRate is the result of historical rate recovery: either a positive
// local-per-reference rate with its source, or explicitly unavailable.
type RecoveredRate struct {
	Value  decimal.Decimal
	Source RateSource
}

// Available reports whether a usable rate was recovered.
func (r RecoveredRate) Available() bool {
	return r.Source != RateSourceNone && r.Value.IsPositive()
}

// Unavailable is the zero recovery result.
func Unavailable() RecoveredRate {
	return RecoveredRate{Source: RateSourceNone}
}

// RecoverRate derives the exchange rate in effect when the order was sold.
// The order totals are authoritative; the first payment record carrying both
// amounts is the fallback. Records are never averaged, so repeated runs over
// the same order always recover the same rate.
func RecoverRate(order *model.Order) RecoveredRate {
	if order == nil {
		return Unavailable()
	}

	if order.TotalAmount.IsPositive() && order.TotalAmountVes.IsPositive() {
		return RecoveredRate{
			Value:  order.TotalAmountVes.Div(order.TotalAmount),
			Source: RateSourceOrderTotals,
		}
	}

	for _, record := range order.PaymentRecords {
		if record.Amount.IsPositive() && record.AmountVes.IsPositive() {
			return RecoveredRate{
				Value:  record.AmountVes.Div(record.Amount),
				Source: RateSourcePaymentRecord,
			}
		}
	}

	return Unavailable()
}
