package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ahmedhsn/studybudget/internal/store"
)

type jsonExport struct {
	ExportedAt       string    `json:"exported_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Count            int       `json:"count"`
	Days             []jsonDay `json:"days"`
}

type jsonDay struct {
	Date               string `json:"date"`
	UniSeconds         int64  `json:"uni_seconds"`
	FYPSeconds         int64  `json:"fyp_seconds"`
	FreelancingSeconds int64  `json:"freelancing_seconds"`
	CareerSeconds      int64  `json:"career_seconds"`
	TotalSeconds       int64  `json:"total_seconds"`
	Total              string `json:"total"`
	GoalSeconds        int64  `json:"goal_seconds"`
}

func ToJSON(stats []store.DayStat, remaining int64, path string) error {
	out := jsonExport{
		ExportedAt:       time.Now().UTC().Format(time.RFC3339),
		RemainingSeconds: remaining,
		Count:            len(stats),
	}

	for _, d := range stats {
		out.Days = append(out.Days, jsonDay{
			Date:               d.Date,
			UniSeconds:         d.UniSeconds,
			FYPSeconds:         d.FYPSeconds,
			FreelancingSeconds: d.FreelancingSeconds,
			CareerSeconds:      d.CareerSeconds,
			TotalSeconds:       d.TotalDailySeconds,
			Total:              formatDuration(d.TotalDailySeconds),
			GoalSeconds:        d.DailyGoalSeconds,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
