package stats

import (
	"sort"
	"strings"

	"github.com/bbtrack/bbtrack/internal/model"
)

// Truncation length for opaque ids shown in place of a missing display name.
const labelIDPrefix = 8

// RankBuckets stable-sorts buckets descending by the given metric and
// returns them. Ties keep their incoming (first-appearance) order — the
// tie-break is deliberately unspecified beyond that.
func RankBuckets(buckets []*Bucket, metric func(*Bucket) float64) []*Bucket {
	sort.SliceStable(buckets, func(i, j int) bool {
		return metric(buckets[i]) > metric(buckets[j])
	})
	return buckets
}

// ByNetProfit is the usual ranking metric.
func ByNetProfit(b *Bucket) float64 { return b.NetProfit }

// TopN truncates a ranked slice to at most n entries.
func TopN(buckets []*Bucket, n int) []*Bucket {
	if n >= 0 && len(buckets) > n {
		return buckets[:n]
	}
	return buckets
}

// RankUsers stable-sorts leaderboard rows descending by net profit.
func RankUsers(aggs []model.UserAggregate) []model.UserAggregate {
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].TotalNet > aggs[j].TotalNet
	})
	return aggs
}

// Label resolves the display label for a ranked entry: the trimmed display
// name when present, otherwise the first 8 characters of the opaque id with
// an ellipsis, otherwise the literal "Unknown".
func Label(displayName, id string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if id != "" {
		if len(id) > labelIDPrefix {
			return id[:labelIDPrefix] + "…"
		}
		return id
	}
	return "Unknown"
}
