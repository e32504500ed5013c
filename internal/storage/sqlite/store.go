// Package sqlite provides a SQLite-backed ledger state implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dominion_dao/contract"
	"dominion_dao/internal/storage/sqlite/migrations"
	"dominion_dao/internal/storage/sqlitemigrate"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrBusy is returned when the database stayed locked past the busy timeout.
var ErrBusy = errors.New("sqlite database is busy")

// Store persists ledger key/value state in SQLite. Every entry is also held in
// memory so reads never touch the database; writes go through Commit.
type Store struct {
	sqlDB *sql.DB
	mu    sync.RWMutex
	cache map[string]string
	err   error
}

var (
	_ contract.State     = (*Store)(nil)
	_ contract.Committer = (*Store)(nil)
)

// Open opens a SQLite state store, applies embedded migrations and loads all entries.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// the ledger has a single writer
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s := &Store{sqlDB: sqlDB, cache: map[string]string{}}
	if err := s.load(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, value FROM state_entries`)
	if err != nil {
		return fmt.Errorf("load state entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan state entry: %w", err)
		}
		s.cache[string(key)] = string(value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state entries: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get serves reads from memory.
func (s *Store) Get(key string) *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.cache[key]
	if !ok {
		return nil
	}
	return &val
}

// Set writes a single entry. A failure is kept and reported by Err.
func (s *Store) Set(key, value string) {
	v := value
	s.keep(s.Commit([]contract.Write{{Key: key, Value: &v}}))
}

// Delete removes a single entry. A failure is kept and reported by Err.
func (s *Store) Delete(key string) {
	s.keep(s.Commit([]contract.Write{{Key: key}}))
}

func (s *Store) keep(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err returns the last failure of a single entry Set or Delete.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Commit applies the batch in one SQL transaction, then to memory.
func (s *Store) Commit(writes []contract.Write) error {
	return s.CommitContext(context.Background(), writes)
}

// CommitContext is Commit bounded by ctx.
func (s *Store) CommitContext(ctx context.Context, writes []contract.Write) error {
	if len(writes) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin commit: %w", err))
	}
	now := time.Now().UTC().UnixMilli()
	for _, w := range writes {
		if w.Value == nil {
			_, err = tx.ExecContext(ctx, `DELETE FROM state_entries WHERE key = ?`, []byte(w.Key))
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO state_entries (key, ns, value, updated_at) VALUES (?, ?, ?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				[]byte(w.Key),
				int(contract.KeyNamespace(w.Key)),
				[]byte(*w.Value),
				now,
			)
		}
		if err != nil {
			_ = tx.Rollback()
			return classify(fmt.Errorf("write state entry: %w", err))
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO commit_log (writes, committed_at) VALUES (?, ?)`, len(writes), now); err != nil {
		_ = tx.Rollback()
		return classify(fmt.Errorf("record commit: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit state: %w", err))
	}
	for _, w := range writes {
		if w.Value == nil {
			delete(s.cache, w.Key)
			continue
		}
		s.cache[w.Key] = *w.Value
	}
	return nil
}

// Counts returns the number of stored entries per namespace, keyed by namespace name.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT ns, COUNT(*) FROM state_entries GROUP BY ns`)
	if err != nil {
		return nil, fmt.Errorf("count state entries: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var ns, n int
		if err := rows.Scan(&ns, &n); err != nil {
			return nil, fmt.Errorf("scan namespace count: %w", err)
		}
		out[contract.NamespaceName(byte(ns))] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespace counts: %w", err)
	}
	return out, nil
}

// Commits returns how many batches were committed so far.
func (s *Store) Commits(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM commit_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	return n, nil
}

// classify tags lock contention so callers can tell it from corruption.
func classify(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", ErrBusy, err)
		}
	}
	return err
}
