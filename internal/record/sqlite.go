package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pxl8/mediabridge/internal/dbx"
)

// SQLiteSchema creates the record table. Callers run it once after opening
// the database.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS optimization_records (
  item_id TEXT PRIMARY KEY,
  record  BLOB NOT NULL
);
`

// SQLiteStore persists records as one JSON document per item id.
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, itemID string) (*Record, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT record FROM optimization_records WHERE item_id = ?`, itemID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", itemID, err)
	}

	rec := &Record{}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("failed to decode record[%s]: %w", itemID, err)
	}
	return rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, itemID string, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record[%s]: %w", itemID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO optimization_records (item_id, record) VALUES (?, ?)
		ON CONFLICT(item_id) DO UPDATE SET record = excluded.record
	`, itemID, raw)
	if err != nil {
		return fmt.Errorf("failed to put record[%s]: %w", itemID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, itemID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM optimization_records WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", itemID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM optimization_records`)
	if err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT item_id, record FROM optimization_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*Record)
	for rows.Next() {
		var itemID string
		var raw []byte
		if err := rows.Scan(&itemID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		rec := &Record{}
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, fmt.Errorf("failed to decode record[%s]: %w", itemID, err)
		}
		result[itemID] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}
