package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank all users by net profit",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	raws, err := db.ListAllBuys()
	if err != nil {
		return fmt.Errorf("list buys: %w", err)
	}
	if len(raws) == 0 {
		fmt.Fprintln(os.Stdout, "No bonus buys logged by anyone yet.")
		return nil
	}

	aggs := stats.RankUsers(stats.FoldLeaderboard(raws, time.Now().UTC()))
	report.PrintLeaderboard(os.Stdout, aggs, cfg.Currency)
	return nil
}
