package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show grouped profit breakdowns",
	Long: `Break the active user's buys down by game, day, weekday, and hour of
day, ranked by net profit.`,
	Args: cobra.NoArgs,
	RunE: runAnalytics,
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	raws, err := db.ListUserBuys(u.ID)
	if err != nil {
		return fmt.Errorf("list buys: %w", err)
	}
	buys := stats.NormalizeAll(raws, time.Now().UTC())
	if len(buys) == 0 {
		fmt.Fprintln(os.Stdout, "No bonus buys yet. Nothing to analyze.")
		return nil
	}

	sessionCount, err := db.CountSessions(u.ID)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Overview ---\n\n")
	report.PrintSummary(os.Stdout, stats.Summarize(buys, sessionCount), cfg.Currency)

	fmt.Fprintf(os.Stdout, "\n--- Top Games ---\n\n")
	games := stats.RankBuckets(stats.GroupBy(buys, stats.GameKey), stats.ByNetProfit)
	report.PrintBucketTable(os.Stdout, "GAME", stats.TopN(games, cfg.TopGames), cfg.Currency)

	report.PrintBarChart(os.Stdout, "Cumulative Profit", stats.CumulativeSeries(buys), cfg.Currency)

	daily := stats.GroupBy(buys, stats.DateKey)
	stats.SortBucketsByKey(daily)
	report.PrintBarChart(os.Stdout, "Daily Net Profit", stats.BucketedSeries(daily), cfg.Currency)

	report.PrintBarChart(os.Stdout, "Net Profit by Weekday",
		stats.BucketedSeries(stats.GroupByWeekday(buys)), cfg.Currency)

	report.PrintBarChart(os.Stdout, "Net Profit by Hour",
		stats.BucketedSeries(stats.GroupByHour(buys)), cfg.Currency)

	fmt.Fprintf(os.Stdout, "\n--- Buy Log ---\n\n")
	report.PrintBuysTable(os.Stdout, buys, cfg.Currency)

	return nil
}
