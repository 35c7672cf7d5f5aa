package stats

import (
	"testing"

	"github.com/bbtrack/bbtrack/internal/model"
)

func TestFoldLeaderboard_Aggregates(t *testing.T) {
	raws := []model.RawBuy{
		{UserID: "u1", Username: "", Cost: 50, Win: 150},
		{UserID: "u2", Username: "bob", Cost: 30, Win: 0},
		{UserID: "u1", Username: "alice", Cost: 100, Win: 0},
		{UserID: "", Cost: 999, Win: 999}, // no user, skipped
		{UserID: "u1", Cost: 10, Win: 40},
	}
	aggs := FoldLeaderboard(raws, testNow)

	if len(aggs) != 2 {
		t.Fatalf("want 2 users, got %d", len(aggs))
	}

	u1 := aggs[0]
	if u1.UserID != "u1" {
		t.Fatalf("first-appearance order broken: got %s", u1.UserID)
	}
	if u1.Username != "alice" {
		t.Errorf("username backfill: want alice, got %q", u1.Username)
	}
	if u1.TotalBuys != 3 || u1.TotalCost != 160 || u1.TotalWin != 190 {
		t.Errorf("u1 totals: %+v", u1)
	}
	if u1.TotalNet != u1.TotalWin-u1.TotalCost {
		t.Errorf("u1 net %v != win %v - cost %v", u1.TotalNet, u1.TotalWin, u1.TotalCost)
	}
	// Wins on the leaderboard count payouts, not profit: 150 and 40.
	if u1.TotalWins != 2 {
		t.Errorf("u1 wins: want 2, got %d", u1.TotalWins)
	}
	if u1.BestMulti != 4 {
		t.Errorf("u1 bestMulti: want 4 (40/10), got %v", u1.BestMulti)
	}

	u2 := aggs[1]
	if u2.Username != "bob" || u2.TotalBuys != 1 || u2.TotalNet != -30 {
		t.Errorf("u2: %+v", u2)
	}
}

// BestMulti only ever ratchets up; later smaller multipliers must not
// overwrite an earlier peak.
func TestFoldLeaderboard_BestMultiMonotonic(t *testing.T) {
	raws := []model.RawBuy{
		{UserID: "u1", Cost: 10, Win: 100}, // 10x
		{UserID: "u1", Cost: 10, Win: 20},  // 2x
		{UserID: "u1", Cost: 0, Win: 50},   // free buy, guarded to 0x
	}
	aggs := FoldLeaderboard(raws, testNow)
	if aggs[0].BestMulti != 10 {
		t.Errorf("bestMulti: want 10, got %v", aggs[0].BestMulti)
	}
}

func TestFoldLeaderboard_Empty(t *testing.T) {
	if aggs := FoldLeaderboard(nil, testNow); len(aggs) != 0 {
		t.Errorf("want no rows, got %d", len(aggs))
	}
}

func TestBestMultiplier(t *testing.T) {
	buys := []model.Buy{
		{Multiplier: 2.5},
		{Multiplier: 80},
		{Multiplier: -1},
	}
	if got := BestMultiplier(buys); got != 80 {
		t.Errorf("want 80, got %v", got)
	}
	if got := BestMultiplier(nil); got != 0 {
		t.Errorf("empty: want 0, got %v", got)
	}
}
