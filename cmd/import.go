package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/exchange"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from an exported JSON document",
	Long: `Add sessions from an export file to the active user's account. Imported
sessions and buys always get new ids, so importing the same file twice
adds two copies rather than overwriting.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	doc, err := exchange.Read(f)
	if err != nil {
		return err
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

	sessions := exchange.Materialize(doc, u.ID, time.Now().UTC(), uuid.NewString)

	buyCount := 0
	for _, s := range sessions {
		if err := db.InsertSession(s); err != nil {
			return fmt.Errorf("insert session %q: %w", s.Name, err)
		}
		if err := db.InsertBuys(s.Buys); err != nil {
			return fmt.Errorf("insert buys for %q: %w", s.Name, err)
		}
		buyCount += len(s.Buys)
	}

	fmt.Fprintf(os.Stdout, "Imported %d sessions (%d buys).\n", len(sessions), buyCount)
	return nil
}
