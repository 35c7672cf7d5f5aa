package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/exchange"
	"github.com/bbtrack/bbtrack/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active user's sessions as JSON",
	Long: `Write every session of the active user, buys included, as a portable
JSON document. Without --out the document goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
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
	raws, err := db.ListSessions(u.ID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	sessions := make([]model.Session, 0, len(raws))
	for _, raw := range raws {
		s, err := assembleSession(db, raw, now)
		if err != nil {
			return err
		}
		sessions = append(sessions, s)
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	if err := exchange.Write(out, sessions, now); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Exported %d sessions to %s\n", len(sessions), exportOut)
	}
	return nil
}
