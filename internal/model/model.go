package model

import "time"

// ---- Raw rows as they come back from the store or an import document ----

// RawBuy is a bonus-buy row before normalization. Cost and Win are deliberately
// untyped: the store hands back whatever SQLite stored (INTEGER, REAL, TEXT)
// and import documents may carry numbers as strings. Normalization owns the
// coercion rules; nothing else in the tree reads these fields directly.
type RawBuy struct {
	ID        string
	SessionID string
	UserID    string
	Username  string // display name of the owning user, "" if none
	Game      string
	Cost      any
	Win       any
	BigWin    bool
	CreatedAt string // RFC3339; "" means unknown
}

// RawSession is a session row before its buys are attached.
type RawSession struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt string
}

// ---- Canonical records ----

// Buy is a normalized bonus-buy record. Profit and Multiplier are derived from
// Cost and Win at normalization time and must never be set independently.
type Buy struct {
	ID         string
	SessionID  string // "" when unassigned
	UserID     string
	Game       string
	Cost       float64
	Win        float64
	Profit     float64 // Win - Cost
	Multiplier float64 // Win / Cost, 0 when Cost == 0
	BigWin     bool
	CreatedAt  time.Time
}

// Session is a named hunt: a user-chosen grouping of buys.
type Session struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	Buys      []Buy // ascending by CreatedAt for display
}

// User is a local identity. Username may be empty; label fallbacks apply.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// ---- Aggregated metrics ----

// Summary holds the scalar aggregates for one collection of buys.
// All fields are defined (zero) for an empty collection; none can be NaN.
type Summary struct {
	TotalBuys     int
	TotalSessions int
	TotalWagered  float64
	TotalWin      float64
	NetProfit     float64
	WinRate       float64 // percent of buys with positive profit
	AverageBet    float64 // 0 when TotalBuys == 0
	// AvgNetPerSession falls back to NetProfit itself when TotalSessions == 0.
	AvgNetPerSession float64
	BestWin          float64
	WorstLoss        float64
	Volatility       float64 // population stddev of profits

	LongestWinStreak  int
	LongestLossStreak int
}

// SessionStats is the per-session rollup shown in history and profile views.
type SessionStats struct {
	SessionID string
	Name      string
	CreatedAt time.Time

	TotalBuys int
	TotalCost float64
	TotalWin  float64
	Net       float64
	BestMulti float64
}

// UserAggregate is one leaderboard row: running totals folded over every buy
// a user has logged. TotalNet is always TotalWin - TotalCost; BestMulti only
// ever grows as buys are folded in.
type UserAggregate struct {
	UserID   string
	Username string // "" falls back to a truncated UserID at render time

	TotalCost float64
	TotalWin  float64
	TotalNet  float64
	TotalBuys int
	TotalWins int // buys with a payout (Win > 0), not buys in profit
	BestMulti float64
}

// AvgProfit returns mean profit per buy for the session, 0 when empty.
func (s SessionStats) AvgProfit() float64 {
	if s.TotalBuys == 0 {
		return 0
	}
	return s.Net / float64(s.TotalBuys)
}

// WinRate returns the share of winning buys in percent, 0 for an empty user.
func (u UserAggregate) WinRate() float64 {
	if u.TotalBuys == 0 {
		return 0
	}
	return float64(u.TotalWins) / float64(u.TotalBuys) * 100
}
