package stats

import "github.com/bbtrack/bbtrack/internal/model"

// SessionRollup reduces one session's buys to its display metrics. Always a
// pure function of the buys passed in — nothing here is cached.
func SessionRollup(s model.Session) model.SessionStats {
	st := model.SessionStats{
		SessionID: s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		TotalBuys: len(s.Buys),
	}
	for _, b := range s.Buys {
		st.TotalCost += b.Cost
		st.TotalWin += b.Win
	}
	st.Net = st.TotalWin - st.TotalCost
	st.BestMulti = BestMultiplier(s.Buys)
	return st
}

// RollupAll maps SessionRollup over a session list, preserving order.
func RollupAll(sessions []model.Session) []model.SessionStats {
	out := make([]model.SessionStats, len(sessions))
	for i, s := range sessions {
		out[i] = SessionRollup(s)
	}
	return out
}

// BestAndWorst picks the sessions with the highest and lowest net. With a
// single session best and worst are the same entry; the caller decides
// whether to show the worst in that case. Nil for an empty list.
func BestAndWorst(stats []model.SessionStats) (best, worst *model.SessionStats) {
	if len(stats) == 0 {
		return nil, nil
	}
	best, worst = &stats[0], &stats[0]
	for i := range stats[1:] {
		s := &stats[i+1]
		if s.Net > best.Net {
			best = s
		}
		if s.Net < worst.Net {
			worst = s
		}
	}
	return best, worst
}
