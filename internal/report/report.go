package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/stats"
)

// Money formats an amount with the configured currency symbol, keeping the
// sign in front of the symbol: -$50.00, $125.40.
func Money(currency string, v float64) string {
	if v < 0 {
		return fmt.Sprintf("-%s%.2f", currency, -v)
	}
	return fmt.Sprintf("%s%.2f", currency, v)
}

// SignedMoney is Money with an explicit "+" on positive amounts, used for
// profit columns.
func SignedMoney(currency string, v float64) string {
	if v > 0 {
		return "+" + Money(currency, v)
	}
	return Money(currency, v)
}

// Multi formats a multiplier, with "—" for the guarded zero (free buys,
// unknown cost).
func Multi(m float64) string {
	if m == 0 {
		return "—"
	}
	return fmt.Sprintf("%.2fx", m)
}

// PrintSummary prints the scalar dashboard metrics as aligned stat lines.
func PrintSummary(w io.Writer, s model.Summary, currency string) {
	lines := []struct {
		label, value string
	}{
		{"Total Buys", strconv.Itoa(s.TotalBuys)},
		{"Sessions", strconv.Itoa(s.TotalSessions)},
		{"Total Wagered", Money(currency, s.TotalWagered)},
		{"Total Win", Money(currency, s.TotalWin)},
		{"Net Profit", SignedMoney(currency, s.NetProfit)},
		{"Win Rate", fmt.Sprintf("%.1f%%", s.WinRate)},
		{"Average Bet", Money(currency, s.AverageBet)},
		{"Avg Net / Session", SignedMoney(currency, s.AvgNetPerSession)},
		{"Best Win", SignedMoney(currency, s.BestWin)},
		{"Worst Loss", SignedMoney(currency, s.WorstLoss)},
		{"Volatility", Money(currency, s.Volatility)},
		{"Longest Win Streak", strconv.Itoa(s.LongestWinStreak)},
		{"Longest Loss Streak", strconv.Itoa(s.LongestLossStreak)},
	}
	for _, l := range lines {
		fmt.Fprintf(w, "  %-20s %s\n", l.label, l.value)
	}
}

// PrintSessionTable prints session history rows, newest first as given.
func PrintSessionTable(w io.Writer, list []model.SessionStats, currency string) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("ID", "NAME", "DATE", "BUYS", "COST", "WIN", "NET", "BEST_X", "AVG/BUY")

	for _, s := range list {
		table.Append(
			shortID(s.SessionID),
			s.Name,
			s.CreatedAt.Format("2006-01-02"),
			strconv.Itoa(s.TotalBuys),
			Money(currency, s.TotalCost),
			Money(currency, s.TotalWin),
			SignedMoney(currency, s.Net),
			Multi(s.BestMulti),
			SignedMoney(currency, s.AvgProfit()),
		)
	}
	table.Render()
}

// PrintBuysTable prints individual buys, oldest first as given.
func PrintBuysTable(w io.Writer, buys []model.Buy, currency string) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("ID", "GAME", "COST", "WIN", "PROFIT", "MULTI", "BIG", "WHEN")

	for _, b := range buys {
		big := " "
		if b.BigWin {
			big = "★"
		}
		table.Append(
			shortID(b.ID),
			b.Game,
			Money(currency, b.Cost),
			Money(currency, b.Win),
			SignedMoney(currency, b.Profit),
			Multi(b.Multiplier),
			big,
			b.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	table.Render()
}

// PrintBucketTable prints ranked grouping rows (games, providers, days).
func PrintBucketTable(w io.Writer, nameHeader string, buckets []*stats.Bucket, currency string) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("#", nameHeader, "BUYS", "SESSIONS", "WAGERED", "NET", "WIN%", "AVG/BUY")

	for i, b := range buckets {
		table.Append(
			strconv.Itoa(i+1),
			b.Key,
			strconv.Itoa(b.Buys),
			strconv.Itoa(b.SessionCount()),
			Money(currency, b.TotalCost),
			SignedMoney(currency, b.NetProfit),
			fmt.Sprintf("%.0f%%", b.WinRate()),
			SignedMoney(currency, b.AvgProfit()),
		)
	}
	table.Render()
}

// PrintLeaderboard prints global user rankings, best net first as given.
func PrintLeaderboard(w io.Writer, aggs []model.UserAggregate, currency string) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("#", "PLAYER", "BUYS", "WAGERED", "NET", "WIN%", "BEST_X")

	for i, a := range aggs {
		table.Append(
			strconv.Itoa(i+1),
			stats.Label(a.Username, a.UserID),
			strconv.Itoa(a.TotalBuys),
			Money(currency, a.TotalCost),
			SignedMoney(currency, a.TotalNet),
			fmt.Sprintf("%.0f%%", a.WinRate()),
			Multi(a.BestMulti),
		)
	}
	table.Render()
}

// PrintSessionCard prints the one-line best/worst session callout.
func PrintSessionCard(w io.Writer, title string, s *model.SessionStats, currency string) {
	if s == nil {
		fmt.Fprintf(w, "%s: —\n", title)
		return
	}
	fmt.Fprintf(w, "%s: %s (%s)  %d buys  net %s\n",
		title, s.Name, s.CreatedAt.Format("2006-01-02"),
		s.TotalBuys, SignedMoney(currency, s.Net))
}

// barWidth is the widest bar drawn by PrintBarChart.
const barWidth = 40

// PrintBarChart renders a horizontal text bar chart for a series. Bars scale
// to the largest absolute value; negative values are drawn in the same
// direction but keep their sign in the printed amount.
func PrintBarChart(w io.Writer, title string, s stats.Series, currency string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(s.Values) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}

	maxAbs := 0.0
	labelWidth := 0
	for i, v := range s.Values {
		if a := abs(v); a > maxAbs {
			maxAbs = a
		}
		if n := len(s.Labels[i]); n > labelWidth {
			labelWidth = n
		}
	}

	for i, v := range s.Values {
		n := 0
		if maxAbs > 0 {
			n = int(abs(v) / maxAbs * barWidth)
		}
		if n == 0 && v != 0 {
			n = 1
		}
		fmt.Fprintf(w, "  %-*s %s %s\n",
			labelWidth, s.Labels[i],
			strings.Repeat("█", n),
			SignedMoney(currency, v))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
