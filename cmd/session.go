package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/stats"
	"github.com/bbtrack/bbtrack/internal/storage"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage hunt sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start a new session and make it active",
	Long: `Start a new session for the active user. Without a name the session is
numbered automatically: "Session 1", "Session 2", and so on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionStart,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show session history",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [id-prefix]",
	Short: "Show one session's buys (defaults to the active session)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionShow,
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename <id-prefix> <name>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionRename,
}

var sessionEndCmd = &cobra.Command{
	Use:   "end",
	Short: "Close the active session",
	Args:  cobra.NoArgs,
	RunE:  runSessionEnd,
}

var sessionRmForce bool

var sessionRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Delete a session and its buys",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionRm,
}

func init() {
	sessionRmCmd.Flags().BoolVarP(&sessionRmForce, "force", "f", false, "skip confirmation prompt")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionRenameCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		n, err := db.CountSessions(u.ID)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		name = fmt.Sprintf("Session %d", n+1)
	}

	s := model.Session{ID: uuid.NewString(), UserID: u.ID, Name: name, CreatedAt: time.Now().UTC()}
	if err := db.InsertSession(s); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if err := db.SetSetting(settingActiveSession, s.ID); err != nil {
		return fmt.Errorf("set active session: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Started %s (%s).\n", s.Name, s.ID[:8])
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	raws, err := db.ListSessions(u.ID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(raws) == 0 {
		fmt.Fprintln(os.Stdout, "No sessions yet. Run 'bbtrack session start' to begin one.")
		return nil
	}

	now := time.Now().UTC()
	sessions := make([]model.Session, 0, len(raws))
	for _, raw := range raws {
		s, err := assembleSession(db, raw, now)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
	}

	report.PrintSessionTable(os.Stdout, stats.RollupAll(sessions), cfg.Currency)
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}

	var raw *model.RawSession
	if len(args) == 1 {
		raw, err = db.GetSessionByPrefix(u.ID, args[0])
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("no session matching %q", args[0])
		}
	} else {
		raw, err = activeSession(db, u.ID)
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("no active session; pass an id or run 'bbtrack session start'")
		}
	}

	s, err := assembleSession(db, *raw, time.Now().UTC())
	if err != nil {
		return err
	}
	st := stats.SessionRollup(s)

	fmt.Fprintf(os.Stdout, "\n%s  |  %s  |  %d buys  |  net %s  |  best %s\n\n",
		st.Name, st.CreatedAt.Format("2006-01-02"), st.TotalBuys,
		report.SignedMoney(cfg.Currency, st.Net), report.Multi(st.BestMulti))

	if len(s.Buys) == 0 {
		fmt.Fprintln(os.Stdout, "No buys in this session yet. Run 'bbtrack add <cost> <win>' to log one.")
		return nil
	}
	report.PrintBuysTable(os.Stdout, s.Buys, cfg.Currency)
	return nil
}

func runSessionRename(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	raw, err := db.GetSessionByPrefix(u.ID, args[0])
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("no session matching %q", args[0])
	}

	name := strings.TrimSpace(args[1])
	if name == "" {
		return fmt.Errorf("session name must not be blank")
	}
	if err := db.RenameSession(raw.ID, name); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Renamed %s to %q.\n", raw.ID[:8], name)
	return nil
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	raw, err := activeSession(db, u.ID)
	if err != nil {
		return err
	}
	if raw == nil {
		fmt.Fprintln(os.Stdout, "No active session.")
		return nil
	}

	if err := db.DeleteSetting(settingActiveSession); err != nil {
		return err
	}
	printSessionClose(db, *raw)
	return nil
}

// printSessionClose prints the closing rollup for a session that just ended.
func printSessionClose(db *storage.DB, raw model.RawSession) {
	s, err := assembleSession(db, raw, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stdout, "Closed %s.\n", raw.Name)
		return
	}
	st := stats.SessionRollup(s)
	fmt.Fprintf(os.Stdout, "Closed %s: %d buys, net %s.\n",
		st.Name, st.TotalBuys, report.SignedMoney(cfg.Currency, st.Net))
}

func runSessionRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	raw, err := db.GetSessionByPrefix(u.ID, args[0])
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("no session matching %q", args[0])
	}

	if !sessionRmForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete %q and all its buys.\n", raw.Name)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if err := db.DeleteSession(raw.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if activeID, _ := db.GetSetting(settingActiveSession); activeID == raw.ID {
		db.DeleteSetting(settingActiveSession)
	}

	fmt.Fprintf(os.Stdout, "Deleted %q.\n", raw.Name)
	return nil
}
