package stats

import (
	"strconv"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/shopspring/decimal"
)

// places is the number of decimal places every monetary metric and the ratio are rounded to.
const places = 2

// amountScale converts yuan amounts into units of 10,000 (万).
const amountScale = 10000.0

// accumulator collects the raw, unrounded sums of one (date, team) group.
type accumulator struct {
	clients          map[string]struct{}
	amount           decimal.Decimal
	fee              decimal.Decimal
	contracted       int
	contractedAmount decimal.Decimal
	contractedFee    decimal.Decimal
	margin           int
	marginAmount     decimal.Decimal
	marginFee        decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{clients: make(map[string]struct{})}
}

func (a *accumulator) add(t models.DerivedTrade) {
	if t.ClientID != "" {
		a.clients[t.ClientID] = struct{}{}
	}
	a.amount = a.amount.Add(valueOrZero(t.Amount))
	a.fee = a.fee.Add(valueOrZero(t.Fee))
	if t.Contracted {
		a.contracted++
	}
	a.contractedAmount = a.contractedAmount.Add(t.ContractedAmount)
	a.contractedFee = a.contractedFee.Add(t.ContractedFee)
	if t.Margin {
		a.margin++
	}
	a.marginAmount = a.marginAmount.Add(t.MarginAmount)
	a.marginFee = a.marginFee.Add(t.MarginFee)
}

// finalize applies scaling and rounding once, on the complete sums.
// Sums are exact decimals; only the final value goes through float64.
func (a *accumulator) finalize(key models.GroupKey) models.SummaryRow {
	return models.SummaryRow{
		Date:               key.Date,
		Team:               key.Team,
		BuyClients:         len(a.clients),
		TotalAmount:        scaled(a.amount),
		TotalFee:           rounded(a.fee),
		ContractedClients:  a.contracted,
		ContractedAmount:   scaled(a.contractedAmount),
		ContractedFee:      rounded(a.contractedFee),
		ContractedFeeRatio: ratio(a.contractedFee, a.fee),
		MarginAccounts:     a.margin,
		MarginAmount:       scaled(a.marginAmount),
		MarginFee:          rounded(a.marginFee),
	}
}

// Aggregate folds trades into one summary row per observed (date, team) pair.
// Trades without a settlement date cannot form a key and are ignored.
func Aggregate(trades []models.DerivedTrade) map[models.GroupKey]models.SummaryRow {
	groups := make(map[models.GroupKey]*accumulator)
	for _, t := range trades {
		if t.SettlementDate.IsZero() {
			continue
		}
		key := models.GroupKey{Date: t.SettlementDate, Team: t.Team}
		acc, ok := groups[key]
		if !ok {
			acc = newAccumulator()
			groups[key] = acc
		}
		acc.add(t)
	}

	out := make(map[models.GroupKey]models.SummaryRow, len(groups))
	for key, acc := range groups {
		out[key] = acc.finalize(key)
	}
	return out
}

func scaled(sum decimal.Decimal) decimal.Decimal {
	return roundFloat(sum.InexactFloat64() / amountScale)
}

func rounded(d decimal.Decimal) decimal.Decimal {
	return roundFloat(d.InexactFloat64())
}

// ratio is part/total rounded, or zero when total is not positive.
// A zero total conflates "no fee charged" with "no contracted fee"; both report 0.
func ratio(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return roundFloat(part.InexactFloat64() / total.InexactFloat64())
}

// roundFloat rounds the exact binary value of f to places decimals, the way
// spreadsheet tools and float round() do: 1.225 and 12.345 sit just above the
// half and round up, 0.015 sits just below and rounds down.
func roundFloat(f float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(f, 'f', places, 64))
}
