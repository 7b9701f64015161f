package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"FlamingBooks/pkg/kit"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type dialect struct {
	schema string
	load   string
	save   string
	del    string
}

var sqliteDialect = dialect{
	schema: `
		CREATE TABLE IF NOT EXISTS cart_slots (
			slot       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	load: `SELECT payload FROM cart_slots WHERE slot = ?`,
	save: `
		INSERT INTO cart_slots (slot, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slot) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at`,
	del: `DELETE FROM cart_slots WHERE slot = ?`,
}

var postgresDialect = dialect{
	schema: `
		CREATE TABLE IF NOT EXISTS cart_slots (
			slot       TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	load: `SELECT payload FROM cart_slots WHERE slot = $1`,
	save: `
		INSERT INTO cart_slots (slot, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
	del: `DELETE FROM cart_slots WHERE slot = $1`,
}

// SQLSlots keeps cart slots in a single table of a database/sql database.
type SQLSlots struct {
	db *sql.DB
	d  dialect
}

func NewPostgresSlots(db *sql.DB) *SQLSlots {
	return &SQLSlots{db: db, d: postgresDialect}
}

func NewSQLiteSlots(db *sql.DB) *SQLSlots {
	return &SQLSlots{db: db, d: sqliteDialect}
}

// OpenSQLiteSlots opens (creating if needed) a SQLite file and its schema.
func OpenSQLiteSlots(ctx context.Context, path string) (*SQLSlots, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := NewSQLiteSlots(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLSlots) Migrate(ctx context.Context) error {
	return kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, s.d.schema)
		return err
	})
}

func (s *SQLSlots) Ping(ctx context.Context) error {
	return kit.WithTimeout(ctx, pingTimeout, s.db.PingContext)
}

func (s *SQLSlots) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, s.d.load, key).Scan(&payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLSlots) Save(ctx context.Context, key string, data []byte) error {
	return kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, s.d.save, key, string(data))
		return err
	})
}

func (s *SQLSlots) Delete(ctx context.Context, key string) error {
	return kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, s.d.del, key)
		return err
	})
}

func (s *SQLSlots) Close() error { return s.db.Close() }
