package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/store"
)

func ToCSV(logs []store.HabitLog, habits map[string]*store.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Habit", "Date", "Day", "Start", "End", "Duration (s)", "Duration"}); err != nil {
		return err
	}

	for _, l := range logs {
		habitName := "Unknown"
		if h, ok := habits[l.HabitID]; ok {
			habitName = h.Name
		}

		row := []string{
			l.ID,
			habitName,
			l.AttributedDate,
			dateutil.DayName(l.AttributedDate),
			l.StartTime.Local().Format(time.RFC3339),
			l.EndTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", l.Duration),
			dateutil.FormatClock(l.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
