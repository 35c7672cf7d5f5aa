package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the active user's overall stats",
	Long: `Display the active user's scalar metrics across every session: totals,
win rate, streaks, volatility, plus the cumulative profit curve and the
buys of the active session.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	raws, err := db.ListUserBuys(u.ID)
	if err != nil {
		return fmt.Errorf("list buys: %w", err)
	}
	buys := stats.NormalizeAll(raws, now)

	sessionCount, err := db.CountSessions(u.ID)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== %s ===\n\n", stats.Label(u.Username, u.ID))

	if len(buys) == 0 {
		fmt.Fprintln(os.Stdout, "No bonus buys yet. Run 'bbtrack session start' and 'bbtrack add' to log your first one.")
		return nil
	}

	summary := stats.Summarize(buys, sessionCount)
	report.PrintSummary(os.Stdout, summary, cfg.Currency)

	report.PrintBarChart(os.Stdout, "Cumulative Profit", stats.CumulativeSeries(buys), cfg.Currency)

	// Active session, if any, gets its buys inlined below the totals.
	session, err := activeSession(db, u.ID)
	if err != nil {
		return err
	}
	if session != nil {
		s, err := assembleSession(db, *session, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\n--- Active: %s ---\n\n", s.Name)
		if len(s.Buys) == 0 {
			fmt.Fprintln(os.Stdout, "No buys yet in this session.")
		} else {
			report.PrintBuysTable(os.Stdout, s.Buys, cfg.Currency)
		}
	}
	return nil
}
