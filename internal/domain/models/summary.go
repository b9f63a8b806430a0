package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupKey identifies one summary row.
type GroupKey struct {
	Date time.Time
	Team Team
}

// SummaryRow holds the per-date, per-team buy statistics.
//
// Amounts are in units of 10,000 (万) and fees in yuan, all rounded to
// two decimal places. The zero value is the row emitted for a team with no
// activity on a date.
//
// swagger:model SummaryRow
type SummaryRow struct {
	Date               time.Time
	Team               Team
	BuyClients         int
	TotalAmount        decimal.Decimal
	TotalFee           decimal.Decimal
	ContractedClients  int
	ContractedAmount   decimal.Decimal
	ContractedFee      decimal.Decimal
	ContractedFeeRatio decimal.Decimal
	MarginAccounts     int
	MarginAmount       decimal.Decimal
	MarginFee          decimal.Decimal
}

// RunStats counts what happened to the input rows during one summary run.
type RunStats struct {
	RowsRead      int
	BuyRows       int
	RowsNoDate    int
	Dates         int
	ObservedPairs int
}

// Report is the outcome of summarizing one uploaded file.
type Report struct {
	ID          string
	SourceName  string
	GeneratedAt time.Time
	Rows        []SummaryRow
	Stats       RunStats
}
