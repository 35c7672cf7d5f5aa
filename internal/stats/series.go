package stats

import "github.com/bbtrack/bbtrack/internal/model"

// Series is a chart-ready pair of parallel label/value sequences.
type Series struct {
	Labels []string
	Values []float64
}

// BucketedSeries emits one point per bucket, in the order given, with the
// bucket's net profit as the value. Date-keyed buckets should be passed
// through SortBucketsByKey first; weekday/hour buckets are already in axis
// order.
func BucketedSeries(buckets []*Bucket) Series {
	s := Series{
		Labels: make([]string, len(buckets)),
		Values: make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Key
		s.Values[i] = b.NetProfit
	}
	return s
}

// CumulativeSeries emits one point per buy, in the order given, carrying the
// running profit total up to and including that buy. The first point is the
// first buy's profit, not zero.
func CumulativeSeries(buys []model.Buy) Series {
	s := Series{
		Labels: make([]string, len(buys)),
		Values: make([]float64, len(buys)),
	}
	var running float64
	for i, b := range buys {
		running += b.Profit
		s.Labels[i] = DateKey(b)
		s.Values[i] = running
	}
	return s
}
