package stats

import (
	"math"
	"testing"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

// buysFromAmounts builds normalized buys from (cost, win) pairs, one minute
// apart so time-ordered helpers behave predictably.
func buysFromAmounts(pairs ...[2]float64) []model.Buy {
	out := make([]model.Buy, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, makeBuy(p[0], p[1], testNow.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0)
	if s.WinRate != 0 || s.Volatility != 0 || s.AverageBet != 0 {
		t.Errorf("empty collection must produce zeros, got %+v", s)
	}
	if math.IsNaN(s.WinRate) || math.IsNaN(s.Volatility) {
		t.Error("empty collection produced NaN")
	}
}

func TestSummarize_NetEqualsWinMinusWagered(t *testing.T) {
	buys := buysFromAmounts([2]float64{50, 100}, [2]float64{80, 0}, [2]float64{20, 60})
	s := Summarize(buys, 2)

	if s.TotalWagered != 150 {
		t.Errorf("wagered: want 150, got %v", s.TotalWagered)
	}
	if s.TotalWin != 160 {
		t.Errorf("win: want 160, got %v", s.TotalWin)
	}
	if s.NetProfit != s.TotalWin-s.TotalWagered {
		t.Errorf("net %v != win %v - wagered %v", s.NetProfit, s.TotalWin, s.TotalWagered)
	}
}

func TestSummarize_WinRateAndAverages(t *testing.T) {
	// Profits: +50, -80, +40, 0 → 2 wins of 4 buys.
	buys := buysFromAmounts(
		[2]float64{50, 100}, [2]float64{80, 0}, [2]float64{20, 60}, [2]float64{30, 30},
	)
	s := Summarize(buys, 2)

	if s.WinRate != 50 {
		t.Errorf("winRate: want 50, got %v", s.WinRate)
	}
	if s.AverageBet != 45 {
		t.Errorf("averageBet: want 45, got %v", s.AverageBet)
	}
	if s.AvgNetPerSession != 5 {
		t.Errorf("avgNetPerSession: want 10/2=5, got %v", s.AvgNetPerSession)
	}
	if s.BestWin != 50 {
		t.Errorf("bestWin: want 50, got %v", s.BestWin)
	}
	if s.WorstLoss != -80 {
		t.Errorf("worstLoss: want -80, got %v", s.WorstLoss)
	}
}

// With buys on record but no sessions, the per-session average keeps the raw
// net instead of dividing.
func TestSummarize_PerSessionFallback(t *testing.T) {
	buys := buysFromAmounts([2]float64{10, 40}) // net +30
	s := Summarize(buys, 0)
	if s.AvgNetPerSession != 30 {
		t.Errorf("avgNetPerSession with 0 sessions: want net 30, got %v", s.AvgNetPerSession)
	}
}

func TestVolatility_PopulationStdDev(t *testing.T) {
	// Profits 10 and -10: mean 0, population variance 100, stddev 10.
	buys := buysFromAmounts([2]float64{10, 20}, [2]float64{10, 0})
	s := Summarize(buys, 1)
	if math.Abs(s.Volatility-10) > 1e-9 {
		t.Errorf("volatility: want 10, got %v", s.Volatility)
	}

	// A single buy has zero dispersion.
	one := Summarize(buys[:1], 1)
	if one.Volatility != 0 {
		t.Errorf("volatility of one buy: want 0, got %v", one.Volatility)
	}
}

func TestStreaks_BreakEvenResetsBoth(t *testing.T) {
	// Profits: +5, +3, -2, -1, -1, 0, +10.
	buys := buysFromAmounts(
		[2]float64{5, 10}, [2]float64{7, 10}, [2]float64{10, 8},
		[2]float64{10, 9}, [2]float64{10, 9}, [2]float64{10, 10},
		[2]float64{10, 20},
	)
	win, loss := Streaks(buys)
	if win != 2 {
		t.Errorf("longest win streak: want 2, got %d", win)
	}
	if loss != 3 {
		t.Errorf("longest loss streak: want 3, got %d", loss)
	}
}

func TestStreaks_Empty(t *testing.T) {
	win, loss := Streaks(nil)
	if win != 0 || loss != 0 {
		t.Errorf("want 0/0 for empty input, got %d/%d", win, loss)
	}
}
