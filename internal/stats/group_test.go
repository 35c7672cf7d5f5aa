package stats

import (
	"testing"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

func TestGroupBy_GameBuckets(t *testing.T) {
	buys := []model.Buy{
		{Game: "Gates of Olympus", Cost: 50, Profit: 25, SessionID: "s1"},
		{Game: "Sugar Rush", Cost: 20, Profit: -20, SessionID: "s1"},
		{Game: "Gates of Olympus", Cost: 50, Profit: -50, SessionID: "s2"},
	}
	buckets := GroupBy(buys, GameKey)

	if len(buckets) != 2 {
		t.Fatalf("want 2 buckets, got %d", len(buckets))
	}
	// First-appearance order.
	if buckets[0].Key != "Gates of Olympus" || buckets[1].Key != "Sugar Rush" {
		t.Errorf("bucket order: got %q, %q", buckets[0].Key, buckets[1].Key)
	}

	g := buckets[0]
	if g.Buys != 2 || g.TotalCost != 100 || g.NetProfit != -25 || g.Wins != 1 {
		t.Errorf("gates bucket: %+v", g)
	}
	if g.SessionCount() != 2 {
		t.Errorf("gates sessions: want 2, got %d", g.SessionCount())
	}
}

// Unassigned buys still count as one implicit session so per-game session
// counts never show 0 for a game that was actually played.
func TestBucket_SessionFloor(t *testing.T) {
	buys := []model.Buy{
		{Game: "Wanted", Profit: 10},
		{Game: "Wanted", Profit: -5},
	}
	b := GroupBy(buys, GameKey)[0]
	if b.SessionCount() != 1 {
		t.Errorf("sessionCount floor: want 1, got %d", b.SessionCount())
	}

	empty := &Bucket{Key: "x"}
	if empty.SessionCount() != 0 {
		t.Errorf("empty bucket sessionCount: want 0, got %d", empty.SessionCount())
	}
}

func TestGroupByWeekday_FixedAxis(t *testing.T) {
	// Empty input still yields all 7 zero-filled buckets.
	buckets := GroupByWeekday(nil)
	if len(buckets) != 7 {
		t.Fatalf("want 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "Sun" || buckets[6].Key != "Sat" {
		t.Errorf("axis order: got %q … %q", buckets[0].Key, buckets[6].Key)
	}
	for _, b := range buckets {
		if b.Buys != 0 || b.NetProfit != 0 {
			t.Errorf("bucket %s not zero-filled: %+v", b.Key, b)
		}
	}

	// All buys on one weekday concentrate in a single bucket.
	monday := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC) // a Monday
	buys := []model.Buy{
		{CreatedAt: monday, Profit: 10},
		{CreatedAt: monday.Add(2 * time.Hour), Profit: -4},
	}
	buckets = GroupByWeekday(buys)
	if len(buckets) != 7 {
		t.Fatalf("want 7 buckets, got %d", len(buckets))
	}
	if buckets[1].Buys != 2 || buckets[1].NetProfit != 6 {
		t.Errorf("monday bucket: %+v", buckets[1])
	}
	if buckets[2].Buys != 0 {
		t.Errorf("tuesday should be empty: %+v", buckets[2])
	}
}

func TestGroupByHour_FixedAxis(t *testing.T) {
	buckets := GroupByHour(nil)
	if len(buckets) != 24 {
		t.Fatalf("want 24 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "0:00" || buckets[23].Key != "23:00" {
		t.Errorf("axis labels: got %q … %q", buckets[0].Key, buckets[23].Key)
	}

	at := time.Date(2025, 6, 16, 22, 15, 0, 0, time.UTC)
	buckets = GroupByHour([]model.Buy{{CreatedAt: at, Profit: 12}})
	if buckets[22].Buys != 1 || buckets[22].NetProfit != 12 {
		t.Errorf("22:00 bucket: %+v", buckets[22])
	}
}

func TestSortBucketsByKey_DatesChronological(t *testing.T) {
	buys := []model.Buy{
		{CreatedAt: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), Profit: 1},
		{CreatedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Profit: 2},
		{CreatedAt: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), Profit: 3},
	}
	buckets := GroupBy(buys, DateKey)
	SortBucketsByKey(buckets)

	want := []string{"2025-06-02", "2025-06-11", "2025-06-20"}
	for i, w := range want {
		if buckets[i].Key != w {
			t.Errorf("bucket %d: want %s, got %s", i, w, buckets[i].Key)
		}
	}
}
