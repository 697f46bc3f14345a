package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportFrom string
	reportTo   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a study-time report for a date range",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Start date YYYY-MM-DD (default: Monday of this week)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "End date YYYY-MM-DD (default: today)")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	from, to := reportFrom, reportTo
	if from == "" || to == "" {
		now := time.Now()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekday := day.Weekday()
		if weekday == time.Sunday {
			weekday = 7
		}
		monday := day.AddDate(0, 0, -int(weekday-time.Monday))
		if from == "" {
			from = monday.Format("2006-01-02")
		}
		if to == "" {
			to = day.Format("2006-01-02")
		}
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return fmt.Errorf("invalid --from date %q", from)
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return fmt.Errorf("invalid --to date %q", to)
	}

	stats, err := s.StatsRange(from, to)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	remaining, err := s.RemainingSeconds()
	if err != nil {
		return fmt.Errorf("load allowance: %w", err)
	}

	fmt.Printf("%s — %s\n", from, to)
	fmt.Println("------------------------------------------------------------------------")
	fmt.Printf("%-12s %10s %10s %10s %10s %12s\n", "Date", "Uni", "FYP", "Freelance", "Career", "Total")

	var total int64
	for _, d := range stats {
		total += d.TotalDailySeconds
		if d.TotalDailySeconds == 0 {
			continue
		}
		fmt.Printf("%-12s %10s %10s %10s %10s %12s\n",
			d.Date,
			hhmmss(d.UniSeconds),
			hhmmss(d.FYPSeconds),
			hhmmss(d.FreelancingSeconds),
			hhmmss(d.CareerSeconds),
			hhmmss(d.TotalDailySeconds),
		)
	}

	fmt.Println("------------------------------------------------------------------------")
	fmt.Printf("%-12s %57s\n", "Total", hhmmss(total))
	fmt.Printf("%-12s %57s\n", "Remaining", hhmmss(remaining))
	return nil
}

func hhmmss(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
