package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/storage"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user and make it active",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userSwitchCmd = &cobra.Command{
	Use:   "switch <username-or-id>",
	Short: "Make another user active",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSwitch,
}

var userRmForce bool

var userRmCmd = &cobra.Command{
	Use:   "rm <username-or-id>",
	Short: "Delete a user and all their sessions and buys",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRm,
}

func init() {
	userRmCmd.Flags().BoolVarP(&userRmForce, "force", "f", false, "skip confirmation prompt")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userSwitchCmd)
	userCmd.AddCommand(userRmCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username must not be blank")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if existing, err := db.FindUserByName(username); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("user %q already exists (id %s)", username, existing.ID)
	}

	u := model.User{ID: uuid.NewString(), Username: username, CreatedAt: time.Now().UTC()}
	if err := db.InsertUser(u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if err := db.SetSetting(settingActiveUser, u.ID); err != nil {
		return fmt.Errorf("set active user: %w", err)
	}
	// A fresh user starts with no active session.
	if err := db.DeleteSetting(settingActiveSession); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created user %s (%s) and made it active.\n", u.Username, u.ID[:8])
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := db.ListUsers()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(os.Stdout, "No users yet. Run 'bbtrack user create <name>' to add one.")
		return nil
	}

	activeID, err := db.GetSetting(settingActiveUser)
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header(" ", "USERNAME", "ID", "CREATED")
	for _, u := range users {
		marker := " "
		if u.ID == activeID {
			marker = ">"
		}
		table.Append(marker, u.Username, u.ID[:8], u.CreatedAt.Format("2006-01-02"))
	}
	table.Render()
	return nil
}

func runUserSwitch(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := findUser(db, args[0])
	if err != nil {
		return err
	}
	if err := db.SetSetting(settingActiveUser, u.ID); err != nil {
		return fmt.Errorf("set active user: %w", err)
	}
	if err := db.DeleteSetting(settingActiveSession); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Switched to %s.\n", u.Username)
	return nil
}

func runUserRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := findUser(db, args[0])
	if err != nil {
		return err
	}
	if !userRmForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete user %s and all their sessions and buys.\n", u.Username)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	if err := db.DeleteUser(u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if activeID, _ := db.GetSetting(settingActiveUser); activeID == u.ID {
		db.DeleteSetting(settingActiveUser)
		db.DeleteSetting(settingActiveSession)
	}

	fmt.Fprintf(os.Stdout, "Deleted user %s.\n", u.Username)
	return nil
}

// findUser resolves a username first, then an id prefix.
func findUser(db *storage.DB, ref string) (*model.User, error) {
	ref = strings.TrimSpace(ref)
	u, err := db.FindUserByName(ref)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	users, err := db.ListUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.HasPrefix(users[i].ID, ref) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("no user matching %q", ref)
}
