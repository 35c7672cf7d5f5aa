package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/config"
	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/stats"
	"github.com/bbtrack/bbtrack/internal/storage"
)

// Settings keys for the app state kept in the store.
const (
	settingActiveUser    = "active_user_id"
	settingActiveSession = "active_session_id"
)

var (
	dbPath  string
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bbtrack",
	Short: "Bonus buy session tracker",
	Long:  "Track slot bonus buys per session and compute profit, streak, and ranking analytics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = fileCfg.Resolve()
		// The --db flag wins; otherwise the config file may point
		// somewhere other than the default.
		if !cmd.Root().PersistentFlags().Changed("db") {
			dbPath = cfg.DBPath
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultConfigPath(), "path to TOML config file")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// activeUser resolves the user selected with 'user switch'. Every command
// that reads or writes records goes through this.
func activeUser(db *storage.DB) (*model.User, error) {
	id, err := db.GetSetting(settingActiveUser)
	if err != nil {
		return nil, fmt.Errorf("read active user: %w", err)
	}
	if id == "" {
		return nil, fmt.Errorf("no active user; run 'bbtrack user create <name>' or 'bbtrack user switch <name>'")
	}
	u, err := db.GetUser(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("active user %s no longer exists; run 'bbtrack user switch <name>'", id)
	}
	return u, nil
}

// activeSession resolves the session selected with 'session start'. A stale
// pointer (deleted session, switched user) falls back to the user's newest
// session and is rewritten; nil without error when the user has none at all.
func activeSession(db *storage.DB, userID string) (*model.RawSession, error) {
	id, err := db.GetSetting(settingActiveSession)
	if err != nil {
		return nil, fmt.Errorf("read active session: %w", err)
	}
	if id == "" {
		// No pointer at all means the user ended their session on purpose.
		return nil, nil
	}
	s, err := db.GetSession(id)
	if err != nil {
		return nil, err
	}
	if s != nil && s.UserID == userID {
		return s, nil
	}

	// Stale pointer: fall back to the newest session, or clear when none.
	sessions, err := db.ListSessions(userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		db.DeleteSetting(settingActiveSession)
		return nil, nil
	}
	latest := sessions[0]
	if err := db.SetSetting(settingActiveSession, latest.ID); err != nil {
		return nil, err
	}
	return &latest, nil
}

// assembleSession attaches a session's normalized buys to its record.
func assembleSession(db *storage.DB, raw model.RawSession, now time.Time) (model.Session, error) {
	s := model.Session{
		ID:        raw.ID,
		UserID:    raw.UserID,
		Name:      raw.Name,
		CreatedAt: parseStoredTime(raw.CreatedAt, now),
	}
	rows, err := db.ListSessionBuys(raw.ID)
	if err != nil {
		return s, fmt.Errorf("list session buys: %w", err)
	}
	s.Buys = stats.NormalizeAll(rows, now)
	return s, nil
}

func parseStoredTime(raw string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}
	return t
}
