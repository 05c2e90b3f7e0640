package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	ID             string `json:"id"`
	Habit          string `json:"habit"`
	HabitID        string `json:"habit_id"`
	AttributedDate string `json:"attributed_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	DurationSec    int64  `json:"duration_seconds"`
	Duration       string `json:"duration"`
}

func ToJSON(logs []store.HabitLog, habits map[string]*store.Habit, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		habitName := "Unknown"
		if h, ok := habits[l.HabitID]; ok {
			habitName = h.Name
		}

		export.Logs = append(export.Logs, jsonLog{
			ID:             l.ID,
			Habit:          habitName,
			HabitID:        l.HabitID,
			AttributedDate: l.AttributedDate,
			StartTime:      l.StartTime.Local().Format(time.RFC3339),
			EndTime:        l.EndTime.Local().Format(time.RFC3339),
			DurationSec:    l.Duration,
			Duration:       dateutil.FormatDuration(l.Duration),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
