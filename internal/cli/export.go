package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmedhsn/studybudget/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportYear   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export daily stats to CSV or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default studybudget-<year>.<format>)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Year to export (default: current)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q, want csv or json", exportFormat)
	}

	year := exportYear
	if year == 0 {
		year = time.Now().Year()
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("studybudget-%d.%s", year, exportFormat)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	stats, err := s.StatsRange(
		fmt.Sprintf("%d-01-01", year),
		fmt.Sprintf("%d-12-31", year),
	)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	if exportFormat == "json" {
		remaining, err := s.RemainingSeconds()
		if err != nil {
			return fmt.Errorf("load allowance: %w", err)
		}
		if err := export.ToJSON(stats, remaining, out); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
	} else {
		if err := export.ToCSV(stats, out); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}

	fmt.Printf("Exported %d days to %s\n", len(stats), out)
	return nil
}
