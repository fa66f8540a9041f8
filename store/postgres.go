package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"sync"

	_ "github.com/lib/pq"
)

//go:embed migrations.sql
var migrationSQL string

// PostgresStore keeps each blob as one row of the kv_blobs table.
type PostgresStore struct {
	DB *sql.DB

	// per-key mutexes so goroutines in this process do not race on the
	// same read-modify-write. Keys are blob key -> *sync.Mutex
	locks sync.Map
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

// Migrate creates the kv_blobs table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, migrationSQL)
	return err
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// lockForKey acquires the process-local lock for key. Returns unlock func.
func (s *PostgresStore) lockForKey(key string) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

const upsertSQL = `
		INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	// jsonb columns take the text form; []byte would be sent as bytea
	_, err := s.DB.ExecContext(ctx, upsertSQL, key, string(value))
	return err
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	unlock := s.lockForKey(key)
	defer unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var current []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv_blobs WHERE key = $1 FOR UPDATE`, key).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	} else {
		_, err = tx.ExecContext(ctx, upsertSQL, key, string(next))
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
