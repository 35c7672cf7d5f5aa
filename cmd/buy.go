package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/report"
	"github.com/bbtrack/bbtrack/internal/stats"
)

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Edit or remove logged buys",
}

var (
	buyEditCost float64
	buyEditWin  float64
	buyEditGame string
	buyEditBig  bool
)

var buyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every buy the active user has logged",
	Args:  cobra.NoArgs,
	RunE:  runBuyList,
}

var buyEditCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Update a logged buy in place",
	Long: `Update a logged buy. Only the flags you pass change; everything else
keeps its stored value. Profit and multiplier are recomputed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuyEdit,
}

var buyRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Delete a logged buy",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuyRm,
}

func init() {
	buyEditCmd.Flags().Float64Var(&buyEditCost, "cost", -1, "new cost")
	buyEditCmd.Flags().Float64Var(&buyEditWin, "win", -1, "new win")
	buyEditCmd.Flags().StringVar(&buyEditGame, "game", "", "new game name")
	buyEditCmd.Flags().BoolVar(&buyEditBig, "big", false, "set the big win flag")

	buyCmd.AddCommand(buyListCmd)
	buyCmd.AddCommand(buyEditCmd)
	buyCmd.AddCommand(buyRmCmd)
}

func runBuyList(cmd *cobra.Command, args []string) error {
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
	if len(raws) == 0 {
		fmt.Fprintln(os.Stdout, "No buys logged yet.")
		return nil
	}

	report.PrintBuysTable(os.Stdout, stats.NormalizeAll(raws, time.Now().UTC()), cfg.Currency)
	return nil
}

func runBuyEdit(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	raw, err := db.GetBuyByPrefix(u.ID, args[0])
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("no buy matching %q", args[0])
	}

	if cmd.Flags().Changed("cost") {
		raw.Cost = buyEditCost
	}
	if cmd.Flags().Changed("win") {
		raw.Win = buyEditWin
	}
	if cmd.Flags().Changed("game") {
		raw.Game = buyEditGame
	}
	if cmd.Flags().Changed("big") {
		raw.BigWin = buyEditBig
	}

	b := stats.Normalize(*raw, time.Now().UTC())
	if err := db.InsertBuy(b); err != nil {
		return fmt.Errorf("update buy: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Updated %s: %s on %s → %s (%s)\n",
		b.ID[:8], report.Money(cfg.Currency, b.Cost), b.Game,
		report.SignedMoney(cfg.Currency, b.Profit), report.Multi(b.Multiplier))
	return nil
}

func runBuyRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := activeUser(db)
	if err != nil {
		return err
	}
	raw, err := db.GetBuyByPrefix(u.ID, args[0])
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("no buy matching %q", args[0])
	}

	if err := db.DeleteBuy(raw.ID); err != nil {
		return fmt.Errorf("delete buy: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted buy %s (%s).\n", raw.ID[:8], raw.Game)
	return nil
}
