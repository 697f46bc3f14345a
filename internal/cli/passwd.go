package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ahmedhsn/studybudget/internal/auth"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set or change the unlock password",
	Args:  cobra.NoArgs,
	RunE:  runPasswd,
}

func runPasswd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	gate := auth.NewGate(s)

	configured, err := gate.Configured()
	if err != nil {
		return fmt.Errorf("read password state: %w", err)
	}

	if configured {
		current, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		if !gate.Check(current) {
			return fmt.Errorf("wrong password")
		}
	}

	next, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := gate.SetPassword(next); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	fmt.Println("Password updated")
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
