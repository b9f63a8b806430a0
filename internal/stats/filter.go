package stats

import "github.com/guttosm/signstats/internal/domain/models"

// BuyDirection is the direction value of a securities purchase.
const BuyDirection = "证券买入"

// FilterBuys keeps the trades whose direction is exactly BuyDirection.
// No trimming or case folding is applied.
func FilterBuys(trades []models.ClassifiedTrade) []models.ClassifiedTrade {
	out := make([]models.ClassifiedTrade, 0, len(trades))
	for _, t := range trades {
		if t.Direction == BuyDirection {
			out = append(out, t)
		}
	}
	return out
}
