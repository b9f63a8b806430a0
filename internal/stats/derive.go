package stats

import (
	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Derive computes the contracted and margin masked values of a trade.
func Derive(t models.ClassifiedTrade) models.DerivedTrade {
	return models.DerivedTrade{
		ClassifiedTrade:  t,
		ContractedAmount: maskedValue(t.Amount, t.Contracted),
		ContractedFee:    maskedValue(t.Fee, t.Contracted),
		MarginAmount:     maskedValue(t.Amount, t.Margin),
		MarginFee:        maskedValue(t.Fee, t.Margin),
	}
}

// maskedValue yields v when flag holds and v is present, otherwise zero.
func maskedValue(v decimal.NullDecimal, flag bool) decimal.Decimal {
	if !flag {
		return decimal.Zero
	}
	return valueOrZero(v)
}

func valueOrZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
