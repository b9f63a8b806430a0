// Package stats turns trade records into the per-date, per-team buy summary.
//
// The stages run in a fixed order, each a plain function over slices:
//
//	Classify → FilterBuys → Derive → Aggregate → Normalize
//
// Nothing here keeps state between calls, so concurrent runs over separate
// inputs need no coordination.
package stats

import "github.com/guttosm/signstats/internal/domain/models"

// Run executes the whole pipeline over one input table.
func Run(records []models.TradeRecord) ([]models.SummaryRow, models.RunStats) {
	st := models.RunStats{RowsRead: len(records)}

	classified := make([]models.ClassifiedTrade, 0, len(records))
	for _, rec := range records {
		classified = append(classified, Classify(rec))
	}

	buys := FilterBuys(classified)
	st.BuyRows = len(buys)

	derived := make([]models.DerivedTrade, 0, len(buys))
	for _, t := range buys {
		if t.SettlementDate.IsZero() {
			st.RowsNoDate++
		}
		derived = append(derived, Derive(t))
	}

	groups := Aggregate(derived)
	st.ObservedPairs = len(groups)

	rows := Normalize(groups)
	st.Dates = len(rows) / len(models.Teams)

	return rows, st
}
