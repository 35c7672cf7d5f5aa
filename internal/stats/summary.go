package stats

import (
	"math"

	"github.com/bbtrack/bbtrack/internal/model"
)

// Summarize computes the scalar aggregates for a buy collection.
// sessionCount is supplied by the caller (distinct sessions in scope).
// An empty collection is a valid input: every field comes back 0.
func Summarize(buys []model.Buy, sessionCount int) model.Summary {
	s := model.Summary{
		TotalBuys:     len(buys),
		TotalSessions: sessionCount,
	}

	wins := 0
	for _, b := range buys {
		s.TotalWagered += b.Cost
		s.TotalWin += b.Win
		s.NetProfit += b.Profit
		if b.Profit > 0 {
			wins++
		}
	}

	if s.TotalBuys > 0 {
		s.WinRate = float64(wins) / float64(s.TotalBuys) * 100
		s.AverageBet = s.TotalWagered / float64(s.TotalBuys)

		s.BestWin = buys[0].Profit
		s.WorstLoss = buys[0].Profit
		for _, b := range buys[1:] {
			if b.Profit > s.BestWin {
				s.BestWin = b.Profit
			}
			if b.Profit < s.WorstLoss {
				s.WorstLoss = b.Profit
			}
		}
	}

	// With buys but no sessions on record, the per-session average
	// degrades to the raw net rather than 0.
	if sessionCount > 0 {
		s.AvgNetPerSession = s.NetProfit / float64(sessionCount)
	} else {
		s.AvgNetPerSession = s.NetProfit
	}

	s.Volatility = volatility(buys)
	s.LongestWinStreak, s.LongestLossStreak = Streaks(buys)
	return s
}

// volatility is the population standard deviation of profits (÷N, not N−1).
func volatility(buys []model.Buy) float64 {
	n := len(buys)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, b := range buys {
		sum += b.Profit
	}
	mean := sum / float64(n)

	var sq float64
	for _, b := range buys {
		d := b.Profit - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}
