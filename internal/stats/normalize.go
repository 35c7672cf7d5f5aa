// Package stats is the analytics core: pure transformations from buy records
// to the summaries, streaks, groupings, rankings and chart series the
// commands render. Nothing in this package touches the store or the clock;
// callers supply a snapshot and a reference time and get plain values back.
package stats

import (
	"math"
	"strconv"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

// Defaults substituted during normalization. Malformed input is never an
// error here — every field degrades to one of these.
const (
	UnknownGame = "Unknown"
)

// timeLayouts are tried in order when parsing a raw timestamp.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize coerces a raw row into a canonical Buy. Total over its input:
// non-numeric or negative amounts become 0, a missing game becomes
// UnknownGame, and a missing or unparseable timestamp becomes now — which
// makes results for such rows non-reproducible across runs, so callers that
// care must persist explicit timestamps.
func Normalize(raw model.RawBuy, now time.Time) model.Buy {
	cost := toNumber(raw.Cost)
	win := toNumber(raw.Win)

	game := raw.Game
	if game == "" {
		game = UnknownGame
	}

	created := now
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw.CreatedAt); err == nil {
			created = t
			break
		}
	}

	b := model.Buy{
		ID:        raw.ID,
		SessionID: raw.SessionID,
		UserID:    raw.UserID,
		Game:      game,
		Cost:      cost,
		Win:       win,
		BigWin:    raw.BigWin,
		CreatedAt: created,
	}
	b.Profit = b.Win - b.Cost
	if b.Cost > 0 {
		b.Multiplier = b.Win / b.Cost
	}
	return b
}

// NormalizeAll maps Normalize over a snapshot, preserving order.
func NormalizeAll(raws []model.RawBuy, now time.Time) []model.Buy {
	out := make([]model.Buy, len(raws))
	for i, r := range raws {
		out[i] = Normalize(r, now)
	}
	return out
}

// toNumber converts whatever the store or an import document produced into a
// non-negative float64. Anything unparseable, NaN, infinite, or negative
// collapses to 0.
func toNumber(v any) float64 {
	var n float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
