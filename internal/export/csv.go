package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ahmedhsn/studybudget/internal/store"
)

func ToCSV(stats []store.DayStat, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"Date", "Uni (s)", "FYP (s)", "Freelancing (s)", "Career (s)",
		"Total (s)", "Total", "Goal (s)",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range stats {
		row := []string{
			d.Date,
			fmt.Sprintf("%d", d.UniSeconds),
			fmt.Sprintf("%d", d.FYPSeconds),
			fmt.Sprintf("%d", d.FreelancingSeconds),
			fmt.Sprintf("%d", d.CareerSeconds),
			fmt.Sprintf("%d", d.TotalDailySeconds),
			formatDuration(d.TotalDailySeconds),
			fmt.Sprintf("%d", d.DailyGoalSeconds),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
