package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/habitr/internal/dateutil"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// WeekStart resolves the week_start setting to a weekday, defaulting to
// Sunday when the setting is missing or unrecognized.
func (s *Store) WeekStart() time.Weekday {
	v, err := s.GetSetting("week_start")
	if err != nil {
		return time.Sunday
	}
	return dateutil.ParseWeekStart(v)
}

// DailyGoal returns the configured daily goal in seconds, 0 if unset.
func (s *Store) DailyGoal() int64 {
	v, err := s.GetSetting("daily_goal")
	if err != nil {
		return 0
	}
	goal, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return goal
}
