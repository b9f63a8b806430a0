package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord represents a single row of the trade-detail export.
// Fields are resolved by header name, not position:
//
//	成交金额 → Amount
//	手续费   → Fee
//	是否签约 → ContractMarker
//	双融账户 → MarginMarker
//	部门     → Department
//	买卖方向 → Direction
//	客户代码 → ClientID
//	交收日期 → SettlementDate
//
// String fields use "" for a null cell (empty or one of the NA spellings).
// A zero SettlementDate means the cell was null.
type TradeRecord struct {
	Row            int // 1-based sheet row, used in error messages
	Amount         decimal.NullDecimal
	Fee            decimal.NullDecimal
	ContractMarker string
	MarginMarker   string
	Department     string
	Direction      string
	ClientID       string
	SettlementDate time.Time
}

// ClassifiedTrade is a TradeRecord annotated with its flags and team.
type ClassifiedTrade struct {
	TradeRecord
	Contracted bool
	Margin     bool
	Team       Team
}

// DerivedTrade carries the flag-masked monetary values of a ClassifiedTrade.
// Each masked value is the source value when the flag holds, otherwise zero;
// a null source value is zero as well.
type DerivedTrade struct {
	ClassifiedTrade
	ContractedAmount decimal.Decimal
	ContractedFee    decimal.Decimal
	MarginAmount     decimal.Decimal
	MarginFee        decimal.Decimal
}
