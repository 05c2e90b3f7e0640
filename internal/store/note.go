package store

import (
	"fmt"
	"time"
)

// GetNote returns the notepad content and the time it was last saved.
func (s *Store) GetNote() (string, time.Time, error) {
	var content, updatedAt string
	err := s.db.QueryRow(`SELECT content, updated_at FROM note WHERE id = 1`).Scan(&content, &updatedAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get note: %w", err)
	}
	t, _ := time.Parse(time.RFC3339, updatedAt)
	return content, t, nil
}

func (s *Store) SaveNote(content string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`UPDATE note SET content = ?, updated_at = ? WHERE id = 1`, content, now)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}
