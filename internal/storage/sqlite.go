package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bukukas/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the ledger in a named in-memory SQLite database.
// The data lives only as long as the store is open.
type SQLiteStore struct {
	db        *sql.DB
	name      string
	closeOnce sync.Once
	closeErr  error
}

// ErrDatabaseInUse is returned when another store in this process already
// holds the named database. Two ledgers on one database would both start
// numbering at 1.
var ErrDatabaseInUse = errors.New("in-memory database already open")

var (
	openMu    sync.Mutex
	openNames = map[string]struct{}{}
)

func claimName(name string) error {
	openMu.Lock()
	defer openMu.Unlock()
	if _, taken := openNames[name]; taken {
		return fmt.Errorf("%w: %q", ErrDatabaseInUse, name)
	}
	openNames[name] = struct{}{}
	return nil
}

func releaseName(name string) {
	openMu.Lock()
	defer openMu.Unlock()
	delete(openNames, name)
}

// MemoryDSN returns the shared-cache in-memory DSN for name.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

func NewSQLiteStore(name string) (*SQLiteStore, error) {
	if name == "" || strings.ContainsAny(name, "/?#&") {
		return nil, fmt.Errorf("invalid in-memory database name %q", name)
	}
	if err := claimName(name); err != nil {
		return nil, err
	}
	dsn := MemoryDSN(name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		releaseName(name)
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps the shared in-memory database alive and
	// serializes access to it.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		releaseName(name)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		releaseName(name)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, name: name}, nil
}

// Close drops the database and frees its name for a later store.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
		releaseName(s.name)
	})
	return s.closeErr
}

// Insert puts tx before every stored row.
func (s *SQLiteStore) Insert(ctx context.Context, tx core.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, position, description, amount_minor, direction, occurred_at)
		VALUES (?, (SELECT COALESCE(MIN(position), 0) - 1 FROM transactions), ?, ?, ?, ?)`,
		tx.ID, tx.Description, tx.Amount, string(tx.Direction), tx.OccurredAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"amount", tx.Amount,
		"direction", tx.Direction)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns rows in display order. Timestamps come back with millisecond precision.
func (s *SQLiteStore) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount_minor, direction, occurred_at
		FROM transactions
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx  core.Transaction
			dir string
			ms  int64
		)
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount, &dir, &ms); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Direction = core.Direction(dir)
		tx.OccurredAt = time.UnixMilli(ms)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
