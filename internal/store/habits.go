package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) CreateHabit(name, color, icon string) (*Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("habit name must not be empty")
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO habits (id, name, color, icon, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, color, icon, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	return s.GetHabit(id)
}

func (s *Store) GetHabit(id string) (*Habit, error) {
	h := &Habit{}
	var createdAt string
	var deletedAt sql.NullString
	err := s.db.QueryRow(
		`SELECT id, name, color, icon, created_at, deleted_at FROM habits WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.Color, &h.Icon, &createdAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("get habit %s: %w", id, err)
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		h.DeletedAt = &t
	}
	return h, nil
}

// ListHabits returns habits sorted by name. Archived habits are excluded
// unless includeArchived is set; they stay queryable so historical
// aggregation keeps working after archival.
func (s *Store) ListHabits(includeArchived bool) ([]Habit, error) {
	query := `SELECT id, name, color, icon, created_at, deleted_at FROM habits`
	if !includeArchived {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		var h Habit
		var createdAt string
		var deletedAt sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Color, &h.Icon, &createdAt, &deletedAt); err != nil {
			return nil, err
		}
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if deletedAt.Valid {
			t, _ := time.Parse(time.RFC3339, deletedAt.String)
			h.DeletedAt = &t
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(id, name, color, icon string) error {
	if name == "" {
		return fmt.Errorf("habit name must not be empty")
	}
	_, err := s.db.Exec(
		`UPDATE habits SET name = ?, color = ?, icon = ? WHERE id = ?`,
		name, color, icon, id,
	)
	return err
}

// ArchiveHabit soft-deletes a habit. Logs that reference it are kept;
// the habit just stops appearing in new-session pickers.
func (s *Store) ArchiveHabit(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id,
	)
	return err
}
