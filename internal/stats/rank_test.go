package stats

import (
	"testing"

	"github.com/bbtrack/bbtrack/internal/model"
)

func TestRankBuckets_StableTies(t *testing.T) {
	buckets := []*Bucket{
		{Key: "A", NetProfit: 50},
		{Key: "B", NetProfit: -10},
		{Key: "C", NetProfit: 50},
	}
	ranked := RankBuckets(buckets, ByNetProfit)

	want := []string{"A", "C", "B"}
	for i, w := range want {
		if ranked[i].Key != w {
			t.Errorf("rank %d: want %s, got %s", i, w, ranked[i].Key)
		}
	}
}

func TestTopN(t *testing.T) {
	buckets := []*Bucket{{Key: "a"}, {Key: "b"}, {Key: "c"}}

	if got := TopN(buckets, 2); len(got) != 2 {
		t.Errorf("TopN(2): want 2, got %d", len(got))
	}
	if got := TopN(buckets, 10); len(got) != 3 {
		t.Errorf("TopN beyond length: want 3, got %d", len(got))
	}
	if got := TopN(nil, 5); len(got) != 0 {
		t.Errorf("TopN of nil: want 0, got %d", len(got))
	}
}

func TestRankUsers_DescendingByNet(t *testing.T) {
	aggs := []model.UserAggregate{
		{UserID: "u1", TotalNet: -40},
		{UserID: "u2", TotalNet: 200},
		{UserID: "u3", TotalNet: 15},
	}
	ranked := RankUsers(aggs)

	want := []string{"u2", "u3", "u1"}
	for i, w := range want {
		if ranked[i].UserID != w {
			t.Errorf("rank %d: want %s, got %s", i, w, ranked[i].UserID)
		}
	}
}

func TestLabel_Fallbacks(t *testing.T) {
	cases := []struct {
		name, display, id, want string
	}{
		{"display name wins", "degen_dave", "1234567890ab", "degen_dave"},
		{"whitespace name falls through", "   ", "1234567890ab", "12345678…"},
		{"short id untruncated", "", "abc", "abc"},
		{"nothing at all", "", "", "Unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Label(tc.display, tc.id); got != tc.want {
				t.Errorf("Label(%q, %q) = %q, want %q", tc.display, tc.id, got, tc.want)
			}
		})
	}
}
