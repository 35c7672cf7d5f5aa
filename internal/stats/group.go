package stats

import (
	"fmt"
	"sort"

	"github.com/bbtrack/bbtrack/internal/model"
)

// Bucket accumulates metrics for all buys sharing one grouping key.
type Bucket struct {
	Key       string
	Buys      int
	TotalCost float64
	NetProfit float64
	Wins      int // buys with profit > 0

	sessions map[string]struct{}
}

// SessionCount returns the number of distinct sessions seen in the bucket.
// A non-empty bucket with only unassigned buys still counts as one implicit
// session.
func (b *Bucket) SessionCount() int {
	if len(b.sessions) == 0 {
		if b.Buys > 0 {
			return 1
		}
		return 0
	}
	return len(b.sessions)
}

// WinRate returns the bucket's winning-buy share in percent, 0 when empty.
func (b *Bucket) WinRate() float64 {
	if b.Buys == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Buys) * 100
}

// AvgProfit returns mean profit per buy, 0 when empty.
func (b *Bucket) AvgProfit() float64 {
	if b.Buys == 0 {
		return 0
	}
	return b.NetProfit / float64(b.Buys)
}

func (b *Bucket) add(buy model.Buy) {
	b.Buys++
	b.TotalCost += buy.Cost
	b.NetProfit += buy.Profit
	if buy.Profit > 0 {
		b.Wins++
	}
	if buy.SessionID != "" {
		if b.sessions == nil {
			b.sessions = make(map[string]struct{})
		}
		b.sessions[buy.SessionID] = struct{}{}
	}
}

// GroupBy partitions buys by the given key function. Buckets come back in
// first-appearance order, which downstream stable sorts preserve for ties.
// Only keys present in the data produce buckets; the weekday and hour
// groupings below are the fixed-axis exceptions.
func GroupBy(buys []model.Buy, key func(model.Buy) string) []*Bucket {
	index := make(map[string]*Bucket)
	var out []*Bucket
	for _, buy := range buys {
		k := key(buy)
		b, ok := index[k]
		if !ok {
			b = &Bucket{Key: k}
			index[k] = b
			out = append(out, b)
		}
		b.add(buy)
	}
	return out
}

// weekdayLabels is indexed by time.Weekday (Sunday = 0).
var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// GroupByWeekday always returns exactly 7 buckets, Sunday first, zero-filled
// where no buys fall — chart axes stay fixed regardless of the data.
func GroupByWeekday(buys []model.Buy) []*Bucket {
	out := make([]*Bucket, 7)
	for i := range out {
		out[i] = &Bucket{Key: weekdayLabels[i]}
	}
	for _, buy := range buys {
		out[int(buy.CreatedAt.Weekday())].add(buy)
	}
	return out
}

// GroupByHour always returns exactly 24 buckets ("0:00" … "23:00"),
// zero-filled where no buys fall.
func GroupByHour(buys []model.Buy) []*Bucket {
	out := make([]*Bucket, 24)
	for i := range out {
		out[i] = &Bucket{Key: fmt.Sprintf("%d:00", i)}
	}
	for _, buy := range buys {
		out[buy.CreatedAt.Hour()].add(buy)
	}
	return out
}

// ---- Common key functions ----

// DateKey buckets by calendar date, ISO format, in the record's location.
func DateKey(b model.Buy) string {
	return b.CreatedAt.Format("2006-01-02")
}

// GameKey buckets by game name (already defaulted by normalization).
func GameKey(b model.Buy) string {
	return b.Game
}

// UserKey buckets by owning user id.
func UserKey(b model.Buy) string {
	return b.UserID
}

// SortBucketsByKey orders buckets lexicographically by key, in place.
// Date-keyed buckets sort chronologically this way.
func SortBucketsByKey(buckets []*Bucket) {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
}
