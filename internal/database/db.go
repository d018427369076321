package database

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the sqlite database at path. Foreign keys are enforced and the
// busy timeout covers writes racing in from Bubble Tea command goroutines.
// A single connection sidesteps sqlite's writer lock entirely.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// WithTx runs fn inside a transaction, rolling back when fn fails.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
