package stats

import (
	"math"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

// FoldLeaderboard folds a global snapshot of raw buy rows into one aggregate
// per user, in first-appearance order (RankUsers sorts; ties then keep this
// order). Rows without a user id are skipped. A user's display name is
// backfilled from the first row that carries one.
func FoldLeaderboard(raws []model.RawBuy, now time.Time) []model.UserAggregate {
	index := make(map[string]int)
	var out []model.UserAggregate

	for _, raw := range raws {
		if raw.UserID == "" {
			continue
		}
		b := Normalize(raw, now)

		i, ok := index[raw.UserID]
		if !ok {
			i = len(out)
			index[raw.UserID] = i
			out = append(out, model.UserAggregate{UserID: raw.UserID})
		}
		agg := &out[i]

		if agg.Username == "" && raw.Username != "" {
			agg.Username = raw.Username
		}
		agg.TotalCost += b.Cost
		agg.TotalWin += b.Win
		agg.TotalNet += b.Profit
		agg.TotalBuys++
		if b.Win > 0 {
			agg.TotalWins++
		}
		if b.Multiplier > agg.BestMulti {
			agg.BestMulti = b.Multiplier
		}
	}
	return out
}

// BestMultiplier returns the largest finite multiplier in the collection,
// never less than 0.
func BestMultiplier(buys []model.Buy) float64 {
	best := 0.0
	for _, b := range buys {
		m := b.Multiplier
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		if m > best {
			best = m
		}
	}
	return best
}
