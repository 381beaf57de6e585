package record

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/pxl8/mediabridge/internal/dbx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigratePostgres applies the record-store schema migrations. The driver is
// expected to be pgx via its database/sql adapter.
func MigratePostgres(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// PostgresStore persists records in a JSONB column, one row per item id.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, itemID string) (*Record, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT record FROM optimization_records WHERE item_id = $1`, itemID).Scan(&raw)
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

func (s *PostgresStore) Put(ctx context.Context, itemID string, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record[%s]: %w", itemID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO optimization_records (item_id, record) VALUES ($1, $2)
		ON CONFLICT (item_id) DO UPDATE SET record = EXCLUDED.record, updated_at = now()
	`, itemID, raw)
	if err != nil {
		return fmt.Errorf("failed to put record[%s]: %w", itemID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, itemID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM optimization_records WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", itemID, err)
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM optimization_records`)
	if err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) (map[string]*Record, error) {
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
