package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/slots"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the active user's profile",
	Long: `Display the active user's identity, best and worst sessions, top
providers by net profit, and full session history.`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s  |  member since %s\n\n",
		stats.Label(u.Username, u.ID), u.CreatedAt.Format("2006-01-02"))

	now := time.Now().UTC()
	raws, err := db.ListSessions(u.ID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	sessions := make([]model.Session, 0, len(raws))
	var allBuys []model.Buy
	for _, raw := range raws {
		s, err := assembleSession(db, raw, now)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
		allBuys = append(allBuys, s.Buys...)
	}

	if len(allBuys) == 0 {
		fmt.Fprintln(os.Stdout, "No bonus buys yet. Log your first session to see provider stats.")
		return nil
	}

	rollups := stats.RollupAll(sessions)
	best, worst := stats.BestAndWorst(rollups)
	report.PrintSessionCard(os.Stdout, "Best session ", best, cfg.Currency)
	// A single session is both best and worst; showing it twice is noise.
	if len(rollups) > 1 {
		report.PrintSessionCard(os.Stdout, "Worst session", worst, cfg.Currency)
	}

	fmt.Fprintf(os.Stdout, "\n--- Top Providers ---\n\n")
	providers := stats.RankBuckets(
		stats.GroupBy(allBuys, func(b model.Buy) string { return slots.ProviderFor(b.Game) }),
		stats.ByNetProfit)
	report.PrintBucketTable(os.Stdout, "PROVIDER", stats.TopN(providers, cfg.TopProviders), cfg.Currency)

	fmt.Fprintf(os.Stdout, "\n--- Sessions ---\n\n")
	report.PrintSessionTable(os.Stdout, rollups, cfg.Currency)
	return nil
}
