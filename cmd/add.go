package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/slots"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var (
	addGame    string
	addBigWin  bool
	addAt      string
	addSession string
)

var addCmd = &cobra.Command{
	Use:   "add <cost> <win>",
	Short: "Log a bonus buy in the active session",
	Long: `Log a bonus buy against the active session. Cost is the buy-in, win is
the total payout (0 for a dead bonus).

Example:
  bbtrack add 50 125 --game "Gates of Olympus"
  bbtrack add 100 0 --game mental --big=false`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addGame, "game", "g", "", "game the bonus was bought on")
	addCmd.Flags().BoolVar(&addBigWin, "big", false, "mark as a big win")
	addCmd.Flags().StringVar(&addAt, "at", "", "override timestamp (RFC3339)")
	addCmd.Flags().StringVarP(&addSession, "session", "s", "", "log into this session id instead of the active one")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cost, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("cost %q is not a number", args[0])
	}
	win, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("win %q is not a number", args[1])
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	var session *model.RawSession
	if addSession != "" {
		session, err = db.GetSessionByPrefix(u.ID, addSession)
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("no session matching %q", addSession)
		}
	} else {
		session, err = activeSession(db, u.ID)
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("no active session; run 'bbtrack session start' first")
		}
	}

	now := time.Now().UTC()
	b := stats.Normalize(model.RawBuy{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		UserID:    u.ID,
		Game:      addGame,
		Cost:      cost,
		Win:       win,
		BigWin:    addBigWin,
		CreatedAt: addAt,
	}, now)

	if err := db.InsertBuy(b); err != nil {
		return fmt.Errorf("insert buy: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Logged %s on %s: %s → %s (%s, %s)\n",
		b.ID[:8], b.Game,
		report.Money(cfg.Currency, b.Cost), report.Money(cfg.Currency, b.Win),
		report.SignedMoney(cfg.Currency, b.Profit), report.Multi(b.Multiplier))

	// Nudge towards catalog spelling so provider stats stay attributable.
	if b.Game != stats.UnknownGame && slots.ProviderFor(b.Game) == slots.UnknownProvider {
		if suggestions := slots.Suggest(b.Game, 3); len(suggestions) > 0 {
			fmt.Fprintf(os.Stderr, "Game %q is not in the catalog. Did you mean:\n", b.Game)
			for _, s := range suggestions {
				fmt.Fprintf(os.Stderr, "  %s (%s)\n", s.Name, s.Provider)
			}
		}
	}
	return nil
}
