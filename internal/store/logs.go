package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateLog persists a validated session. Callers are expected to have
// run the input through the session validator first; the store does not
// re-derive duration or attributed date.
func (s *Store) CreateLog(habitID string, start, end time.Time, duration int64, attributedDate string) (*HabitLog, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO habit_logs (id, habit_id, start_time, end_time, duration, attributed_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, habitID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		duration, attributedDate, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	return s.GetLog(id)
}

// UpdateLog replaces a log wholesale. Edits always recompute duration and
// attributed date upstream, so every field is written.
func (s *Store) UpdateLog(id, habitID string, start, end time.Time, duration int64, attributedDate string) error {
	_, err := s.db.Exec(
		`UPDATE habit_logs SET habit_id = ?, start_time = ?, end_time = ?, duration = ?, attributed_date = ? WHERE id = ?`,
		habitID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		duration, attributedDate, id,
	)
	if err != nil {
		return fmt.Errorf("update log %s: %w", id, err)
	}
	return nil
}

func (s *Store) GetLog(id string) (*HabitLog, error) {
	l := &HabitLog{}
	var startTime, endTime, createdAt string
	err := s.db.QueryRow(
		`SELECT id, habit_id, start_time, end_time, duration, attributed_date, created_at
		 FROM habit_logs WHERE id = ?`, id,
	).Scan(&l.ID, &l.HabitID, &startTime, &endTime, &l.Duration, &l.AttributedDate, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get log %s: %w", id, err)
	}
	l.StartTime, _ = time.Parse(time.RFC3339, startTime)
	l.EndTime, _ = time.Parse(time.RFC3339, endTime)
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return l, nil
}

// DeleteLog removes a log permanently. Logs are hard-deleted, unlike
// habits.
func (s *Store) DeleteLog(id string) error {
	_, err := s.db.Exec(`DELETE FROM habit_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListLogs(f LogFilter) ([]HabitLog, error) {
	query := `SELECT id, habit_id, start_time, end_time, duration, attributed_date, created_at FROM habit_logs WHERE 1=1`
	var args []any

	if f.HabitID != "" {
		query += ` AND habit_id = ?`
		args = append(args, f.HabitID)
	}
	if f.FromDate != "" {
		query += ` AND attributed_date >= ?`
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		query += ` AND attributed_date <= ?`
		args = append(args, f.ToDate)
	}
	query += ` ORDER BY start_time DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []HabitLog
	for rows.Next() {
		var l HabitLog
		var startTime, endTime, createdAt string
		if err := rows.Scan(&l.ID, &l.HabitID, &startTime, &endTime, &l.Duration, &l.AttributedDate, &createdAt); err != nil {
			return nil, err
		}
		l.StartTime, _ = time.Parse(time.RFC3339, startTime)
		l.EndTime, _ = time.Parse(time.RFC3339, endTime)
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
