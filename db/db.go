// Package db wraps database/sql calls so every statement is logged before it
// runs.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storyverse/server/logging"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func LogAndQuery(ctx context.Context, log logging.Logger, db DBTX, query string, args ...any) (*sql.Rows, error) {
	log.Debug(ctx, "sql query", "query", query, "args", args)

	res, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return res, nil
}

func LogAndQueryRow(ctx context.Context, log logging.Logger, db DBTX, query string, args ...any) *sql.Row {
	log.Debug(ctx, "sql query row", "query", query, "args", args)

	return db.QueryRowContext(ctx, query, args...)
}

func LogAndExec(ctx context.Context, log logging.Logger, db DBTX, query string, args ...any) (sql.Result, error) {
	log.Debug(ctx, "sql exec", "query", query, "args", args)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}

	return res, nil
}
