// Package sqlite implements the ledger store on modernc.org/sqlite. The
// default DSN is a shared in-memory database, so ledgers live only as long
// as the process; pointing the DSN at a file is an operator opt-in.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A single connection keeps every statement on the same in-memory
	// database and sidesteps SQLITE_BUSY under write contention.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Seed implements store.LedgerSeeder.
func (r *Repository) Seed(ctx context.Context, sessionID string, records []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	for i, t := range records {
		if err := insertEntry(ctx, tx, sessionID, int64(i+1), t); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	slog.InfoContext(ctx, "Ledger seeded", "session_id", sessionID, "record_count", len(records))
	return nil
}

// Append implements store.LedgerAppender.
func (r *Repository) Append(ctx context.Context, sessionID string, t core.Transaction) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM ledger_entries WHERE session_id = ?`, sessionID)
	if err := row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	if err := insertEntry(ctx, tx, sessionID, seq, t); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}

	return seq, nil
}

// List implements store.LedgerReader.
func (r *Repository) List(ctx context.Context, sessionID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tx_date, category, amount_cents, notes, gender
		 FROM ledger_entries WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	records := []core.Transaction{}
	for rows.Next() {
		var (
			date  string
			t     core.Transaction
			cents int64
		)
		if err := rows.Scan(&date, &t.Category, &cents, &t.Notes, &t.Gender); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		t.Date = core.CoerceDate(date)
		t.Amount = core.Money{Cents: cents}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return records, nil
}

// Drop implements store.LedgerDropper.
func (r *Repository) Drop(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("drop ledger: %w", err)
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, sessionID string, seq int64, t core.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (session_id, seq, tx_date, category, amount_cents, notes, gender)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, seq, t.Date.ExportString(), t.Category, t.Amount.Cents, t.Notes, t.Gender)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
