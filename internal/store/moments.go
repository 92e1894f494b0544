package store

import (
	"encoding/json"
	"fmt"

	"momenta/internal/moment"
)

func (s *SQLiteStore) Add(m *moment.Moment) error {
	var emb []byte
	if len(m.Embedding) > 0 {
		var err error
		emb, err = json.Marshal(m.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding: %w", err)
		}
	}
	_, err := s.db.Exec(`INSERT INTO moments (id, user_id, text, source, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Text, string(m.Source), emb, m.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert moment: %w", err)
	}
	return nil
}

// ByUser returns the user's full history ordered oldest first.
func (s *SQLiteStore) ByUser(userID int64) ([]*moment.Moment, error) {
	rows, err := s.db.Query(`SELECT id, user_id, text, source, embedding, created_at
		FROM moments WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list moments: %w", err)
	}
	defer rows.Close()

	var out []*moment.Moment
	for rows.Next() {
		var m moment.Moment
		var src string
		var emb []byte
		var created int64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Text, &src, &emb, &created); err != nil {
			return nil, fmt.Errorf("scan moment: %w", err)
		}
		m.Source = moment.Source(src)
		m.CreatedAt = fromUnix(created)
		if len(emb) > 0 {
			if err := json.Unmarshal(emb, &m.Embedding); err != nil {
				return nil, fmt.Errorf("decode embedding: %w", err)
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
