package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ahmedhsn/studybudget/internal/store"
	"github.com/ahmedhsn/studybudget/internal/tui"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "studybudget",
	Short: "A yearly study-time budget tracker",
	Long: `studybudget tracks study time against a fixed yearly allowance of
3600 hours, split across categories, with a daily planner, calendar,
notes, and timetables. Running it with no subcommand opens the TUI.`,
	RunE: runTUI,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default ~/.config/studybudget/studybudget.db)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(passwdCmd)
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}

// openLogger writes structured logs to a file next to the database so the
// TUI's alternate screen stays clean.
func openLogger() *slog.Logger {
	logPath, err := store.DefaultLogPath()
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	log := openLogger()

	app := tui.NewApp(s, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
