package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmedhsn/studybudget/internal/store"
)

func sampleStats() []store.DayStat {
	return []store.DayStat{
		{
			Date: "2026-01-05", Year: 2026, Month: 1,
			DailyGoalSeconds: 36000,
			UniSeconds:       3600, FYPSeconds: 1800,
			TotalDailySeconds: 5400,
		},
		{
			Date: "2026-01-06", Year: 2026, Month: 1,
			DailyGoalSeconds: 36000,
			CareerSeconds:    90,
			TotalDailySeconds: 90,
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	if err := ToCSV(sampleStats(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "2026-01-05" || rows[1][5] != "5400" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
	if rows[1][6] != "01:30:00" {
		t.Fatalf("formatted total = %s, want 01:30:00", rows[1][6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Date,") {
		t.Fatalf("header missing: %q", data)
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := ToJSON(sampleStats(), 12959600, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Days) != 2 {
		t.Fatalf("count = %d, days = %d", out.Count, len(out.Days))
	}
	if out.RemainingSeconds != 12959600 {
		t.Fatalf("remaining = %d", out.RemainingSeconds)
	}
	if out.Days[0].Total != "01:30:00" {
		t.Fatalf("formatted total = %s", out.Days[0].Total)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.secs); got != c.want {
			t.Errorf("formatDuration(%d) = %s, want %s", c.secs, got, c.want)
		}
	}
}
