package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1 = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
)

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func buy(client, dept string, date time.Time, amount, fee string) models.TradeRecord {
	return models.TradeRecord{
		Amount:         num(amount),
		Fee:            num(fee),
		Department:     dept,
		Direction:      BuyDirection,
		ClientID:       client,
		SettlementDate: date,
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name           string
		rec            models.TradeRecord
		wantContracted bool
		wantMargin     bool
		wantTeam       models.Team
	}{
		{name: "contracted advisory", rec: models.TradeRecord{ContractMarker: "是", Department: "财富中心"}, wantContracted: true, wantTeam: models.TeamAdvisory},
		{name: "n/a sentinel", rec: models.TradeRecord{ContractMarker: "#N/A", Department: "营销中心"}, wantTeam: models.TeamMarketing},
		{name: "null marker", rec: models.TradeRecord{Department: "某营业部"}, wantTeam: models.TeamIndependent},
		{name: "margin only", rec: models.TradeRecord{MarginMarker: "融资融券"}, wantMargin: true, wantTeam: models.TeamIndependent},
		{name: "dept not trimmed", rec: models.TradeRecord{Department: " 财富中心"}, wantTeam: models.TeamIndependent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.rec)
			assert.Equal(t, tc.wantContracted, got.Contracted)
			assert.Equal(t, tc.wantMargin, got.Margin)
			assert.Equal(t, tc.wantTeam, got.Team)
		})
	}
}

func TestFilterBuys(t *testing.T) {
	in := []models.ClassifiedTrade{
		{TradeRecord: models.TradeRecord{Row: 2, Direction: "证券买入"}},
		{TradeRecord: models.TradeRecord{Row: 3, Direction: "证券卖出"}},
		{TradeRecord: models.TradeRecord{Row: 4, Direction: " 证券买入"}},
		{TradeRecord: models.TradeRecord{Row: 5, Direction: ""}},
	}
	out := FilterBuys(in)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Row)
}

func TestMaskedValue(t *testing.T) {
	assertDec(t, "12.5", maskedValue(num("12.5"), true), "flag set")
	assertDec(t, "0", maskedValue(num("12.5"), false), "flag unset")
	assertDec(t, "0", maskedValue(decimal.NullDecimal{}, true), "null value")
}

func TestDerive_NullAmountOnContractedRow(t *testing.T) {
	d := Derive(models.ClassifiedTrade{
		TradeRecord: models.TradeRecord{Fee: num("5")},
		Contracted:  true,
		Margin:      true,
	})
	assertDec(t, "0", d.ContractedAmount, "contracted amount")
	assertDec(t, "5", d.ContractedFee, "contracted fee")
	assertDec(t, "0", d.MarginAmount, "margin amount")
	assertDec(t, "5", d.MarginFee, "margin fee")
}

func TestRun_TwoRowExample(t *testing.T) {
	cases := []struct {
		name                 string
		secondClient         string
		contractedFirst      bool
		wantClients          int
		wantContractedAmount string
		wantContractedFee    string
		wantRatio            string
	}{
		{name: "distinct clients, first contracted", secondClient: "C2", contractedFirst: true, wantClients: 2, wantContractedAmount: "1", wantContractedFee: "10", wantRatio: "0.33"},
		{name: "same client, second contracted", secondClient: "C1", contractedFirst: false, wantClients: 1, wantContractedAmount: "2", wantContractedFee: "20", wantRatio: "0.67"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := buy("C1", "财富中心", day1, "10000", "10")
			b := buy(tc.secondClient, "财富中心", day1, "20000", "20")
			if tc.contractedFirst {
				a.ContractMarker = "是"
			} else {
				b.ContractMarker = "是"
			}

			rows, st := Run([]models.TradeRecord{a, b})
			require.Len(t, rows, 3)
			assert.Equal(t, 1, st.Dates)

			r := rows[0]
			assert.Equal(t, models.TeamAdvisory, r.Team)
			assert.Equal(t, tc.wantClients, r.BuyClients)
			assertDec(t, "3", r.TotalAmount, "total amount")
			assertDec(t, "30", r.TotalFee, "total fee")
			assert.Equal(t, 1, r.ContractedClients)
			assertDec(t, tc.wantContractedAmount, r.ContractedAmount, "contracted amount")
			assertDec(t, tc.wantContractedFee, r.ContractedFee, "contracted fee")
			assertDec(t, tc.wantRatio, r.ContractedFeeRatio, "ratio")
		})
	}
}

func TestRun_SellRowsExcluded(t *testing.T) {
	sell := buy("C9", "财富中心", day1, "999999", "999")
	sell.Direction = "证券卖出"
	sell.ContractMarker = "是"
	sell.MarginMarker = "Y"

	// malformed sell rows: null numbers, no settlement date, new client and team
	broken := models.TradeRecord{Direction: "证券卖出", ContractMarker: "是", MarginMarker: "Y", Department: "营销中心", ClientID: "C8"}
	undatedSell := buy("C7", "", time.Time{}, "1", "1")
	undatedSell.Direction = "证券卖出"

	base := []models.TradeRecord{buy("C1", "财富中心", day1, "10000", "10")}
	want, _ := Run(base)
	got, st := Run(append(base, sell, broken, undatedSell))

	assert.Equal(t, 4, st.RowsRead)
	assert.Equal(t, 0, st.RowsNoDate, "undated sell rows are not counted")
	assert.Equal(t, 1, st.BuyRows)
	assert.Equal(t, render(want), render(got))
}

func TestRun_OnlySellsGivesEmptyTable(t *testing.T) {
	sell := buy("C1", "营销中心", day1, "100", "1")
	sell.Direction = "证券卖出"

	rows, st := Run([]models.TradeRecord{sell})
	assert.Empty(t, rows)
	assert.Equal(t, 0, st.Dates)

	rows, _ = Run(nil)
	assert.Empty(t, rows)
}

func TestRun_CompletenessAndOrdering(t *testing.T) {
	recs := []models.TradeRecord{
		buy("C1", "营销中心", day2, "50000", "12"),
		buy("C2", "other", day1, "10000", "3"),
	}
	rows, st := Run(recs)
	require.Len(t, rows, 6)
	assert.Equal(t, 2, st.Dates)
	assert.Equal(t, 2, st.ObservedPairs)

	for i, r := range rows {
		wantDate := day1
		if i >= 3 {
			wantDate = day2
		}
		assert.Equal(t, wantDate, r.Date, "row %d date", i)
		assert.Equal(t, models.Teams[i%3], r.Team, "row %d team", i)
	}

	// day1 has only independent activity; the other two teams are zero rows.
	for _, r := range rows[:2] {
		assert.Zero(t, r.BuyClients)
		assert.True(t, r.TotalAmount.IsZero())
		assert.True(t, r.ContractedFeeRatio.IsZero())
	}
	assertDec(t, "1", rows[2].TotalAmount, "independent day1")
	assertDec(t, "5", rows[4].TotalAmount, "marketing day2")
}

func TestRun_RowsWithoutDateAreSkipped(t *testing.T) {
	undated := buy("C1", "财富中心", time.Time{}, "10000", "10")
	rows, st := Run([]models.TradeRecord{undated, buy("C2", "财富中心", day1, "20000", "20")})

	assert.Equal(t, 1, st.RowsNoDate)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].BuyClients)
	assertDec(t, "2", rows[0].TotalAmount, "total amount")
}

func TestRun_NullValuesContributeZero(t *testing.T) {
	r := buy("C1", "财富中心", day1, "0", "0")
	r.Amount = decimal.NullDecimal{}
	r.Fee = decimal.NullDecimal{}
	r.ContractMarker = "是"

	rows, _ := Run([]models.TradeRecord{r, buy("", "财富中心", day1, "10000", "1")})
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].BuyClients, "empty client id is not a client")
	assert.Equal(t, 1, rows[0].ContractedClients)
	assertDec(t, "1", rows[0].TotalAmount, "total amount")
	assertDec(t, "0", rows[0].ContractedAmount, "contracted amount")
	assertDec(t, "0", rows[0].ContractedFeeRatio, "ratio")
}

func TestRun_RoundingAppliedAfterSumming(t *testing.T) {
	// per-row rounding would give 3 × 0.01 = 0.03
	recs := []models.TradeRecord{
		buy("C1", "营销中心", day1, "1", "0.006"),
		buy("C2", "营销中心", day1, "1", "0.006"),
		buy("C3", "营销中心", day1, "1", "0.006"),
	}
	rows, _ := Run(recs)
	require.Len(t, rows, 3)
	assertDec(t, "0.02", rows[1].TotalFee, "total fee")
}

func TestRun_RoundingOfHalfwayTotals(t *testing.T) {
	cases := []struct {
		name       string
		amount     string
		fee        string
		wantAmount string
		wantFee    string
	}{
		{name: "1.225 rounds up", amount: "12250", fee: "12.345", wantAmount: "1.23", wantFee: "12.35"},
		{name: "0.015 rounds down", amount: "150", fee: "0.015", wantAmount: "0.01", wantFee: "0.01"},
		{name: "2.675 rounds down", amount: "26750", fee: "2.675", wantAmount: "2.67", wantFee: "2.67"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := buy("C1", "财富中心", day1, tc.amount, tc.fee)
			r.ContractMarker = "是"
			r.MarginMarker = "Y"
			rows, _ := Run([]models.TradeRecord{r})
			require.Len(t, rows, 3)
			got := rows[0]
			assertDec(t, tc.wantAmount, got.TotalAmount, "total amount")
			assertDec(t, tc.wantFee, got.TotalFee, "total fee")
			assertDec(t, tc.wantAmount, got.ContractedAmount, "contracted amount")
			assertDec(t, tc.wantFee, got.ContractedFee, "contracted fee")
			assertDec(t, tc.wantAmount, got.MarginAmount, "margin amount")
			assertDec(t, tc.wantFee, got.MarginFee, "margin fee")
		})
	}
}

func TestRun_RatioBounds(t *testing.T) {
	zeroFee := buy("C1", "财富中心", day1, "10000", "0")
	zeroFee.ContractMarker = "是"
	allContracted := buy("C2", "营销中心", day1, "10000", "7.77")
	allContracted.ContractMarker = "签约"
	partial := buy("C3", "", day1, "10000", "9")
	partial.ContractMarker = "签约"
	other := buy("C4", "", day1, "10000", "1")

	rows, _ := Run([]models.TradeRecord{zeroFee, allContracted, partial, other})
	require.Len(t, rows, 3)
	assertDec(t, "0", rows[0].ContractedFeeRatio, "zero fee")
	assertDec(t, "1", rows[1].ContractedFeeRatio, "fully contracted")
	assertDec(t, "0.9", rows[2].ContractedFeeRatio, "partial")
	for _, r := range rows {
		assert.False(t, r.ContractedFeeRatio.IsNegative())
		assert.True(t, r.ContractedFeeRatio.LessThanOrEqual(decimal.NewFromInt(1)))
	}
}

func TestRun_ConservationPerDate(t *testing.T) {
	recs := []models.TradeRecord{
		buy("C1", "财富中心", day1, "12345.67", "1"),
		buy("C2", "营销中心", day1, "23456.78", "1"),
		buy("C3", "x", day1, "34567.89", "1"),
		buy("C4", "x", day1, "45678.91", "1"),
	}
	rows, _ := Run(recs)
	require.Len(t, rows, 3)

	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.TotalAmount)
	}
	want := roundFloat(116049.25 / amountScale)
	tolerance := decimal.RequireFromString("0.02")
	assert.Truef(t, sum.Sub(want).Abs().LessThanOrEqual(tolerance), "sum %s vs total %s", sum, want)
}

func TestRun_Idempotent(t *testing.T) {
	c := buy("C1", "财富中心", day1, "10000", "10")
	c.ContractMarker = "是"
	c.MarginMarker = "Y"
	recs := []models.TradeRecord{c, buy("C2", "营销中心", day2, "333", "0.33"), buy("C3", "", day1, "1", "0.01")}

	first, _ := Run(recs)
	second, _ := Run(recs)
	assert.Equal(t, render(first), render(second))
}

func render(rows []models.SummaryRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%s|%s|%d|%s|%s|%d|%s|%s|%s|%d|%s|%s",
			r.Date.Format(time.DateOnly), r.Team, r.BuyClients, r.TotalAmount, r.TotalFee,
			r.ContractedClients, r.ContractedAmount, r.ContractedFee, r.ContractedFeeRatio,
			r.MarginAccounts, r.MarginAmount, r.MarginFee))
	}
	return out
}
