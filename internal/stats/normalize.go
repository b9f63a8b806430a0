package stats

import (
	"sort"
	"time"

	"github.com/guttosm/signstats/internal/domain/models"
)

// Normalize expands sparse aggregates into a dense table: for every observed
// date (ascending) one row per team in models.Teams order. Pairs missing from
// groups are emitted with all metrics zero.
func Normalize(groups map[models.GroupKey]models.SummaryRow) []models.SummaryRow {
	dates := distinctDates(groups)

	out := make([]models.SummaryRow, 0, len(dates)*len(models.Teams))
	for _, d := range dates {
		for _, team := range models.Teams {
			key := models.GroupKey{Date: d, Team: team}
			row, ok := groups[key]
			if !ok {
				row = models.SummaryRow{Date: d, Team: team}
			}
			out = append(out, row)
		}
	}
	return out
}

func distinctDates(groups map[models.GroupKey]models.SummaryRow) []time.Time {
	seen := make(map[time.Time]struct{}, len(groups))
	dates := make([]time.Time, 0, len(groups))
	for key := range groups {
		if _, ok := seen[key.Date]; ok {
			continue
		}
		seen[key.Date] = struct{}{}
		dates = append(dates, key.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
