package stats

import "github.com/bbtrack/bbtrack/internal/model"

// Streaks returns the longest runs of consecutive winning and losing buys,
// counted in buys, in the order supplied — callers wanting "consecutive in
// time" must pass a time-ordered slice. A break-even buy (profit exactly 0)
// ends both runs.
func Streaks(buys []model.Buy) (longestWin, longestLoss int) {
	var winRun, lossRun int
	for _, b := range buys {
		switch {
		case b.Profit > 0:
			winRun++
			lossRun = 0
		case b.Profit < 0:
			lossRun++
			winRun = 0
		default:
			winRun = 0
			lossRun = 0
		}
		if winRun > longestWin {
			longestWin = winRun
		}
		if lossRun > longestLoss {
			longestLoss = lossRun
		}
	}
	return longestWin, longestLoss
}
