package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// StashSchema creates the artifact table used by the Postgres stash backend.
const StashSchema = `
CREATE TABLE IF NOT EXISTS stash_artifacts (
	account    TEXT        NOT NULL,
	project    TEXT        NOT NULL,
	kind       TEXT        NOT NULL,
	path       TEXT        NOT NULL,
	content    BYTEA       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (account, project, kind, path)
)`

// OpenPostgres connects to dsn and makes sure the stash table exists.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not connect to Postgres: %w", err)
	}
	if _, err := conn.ExecContext(ctx, StashSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create stash schema: %w", err)
	}
	return conn, nil
}
