package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year [YYYY]",
	Short: "Pre-create the daily stats rows for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runYear,
}

func runYear(cmd *cobra.Command, args []string) error {
	year := time.Now().Year()
	if len(args) == 1 {
		y, err := strconv.Atoi(args[0])
		if err != nil || y < 1970 || y > 9999 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = y
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	if err := s.InitYearRows(year); err != nil {
		return fmt.Errorf("init year rows: %w", err)
	}

	fmt.Printf("Initialized daily rows for %d\n", year)
	return nil
}
