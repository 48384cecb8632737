package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		id                TEXT PRIMARY KEY,
		key_hash          TEXT NOT NULL UNIQUE,
		name              TEXT NOT NULL,
		max_requests      INTEGER NOT NULL,
		revoked           BOOLEAN NOT NULL DEFAULT FALSE,
		lifetime_requests BIGINT NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS quota_records (
		credential_id  TEXT PRIMARY KEY,
		requests_count INTEGER NOT NULL,
		last_reset     TIMESTAMPTZ NOT NULL,
		max_requests   INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS audit_records (
		id            TEXT PRIMARY KEY,
		credential_id TEXT NOT NULL,
		endpoint      TEXT NOT NULL DEFAULT '',
		prompt        TEXT NOT NULL DEFAULT '',
		model         TEXT NOT NULL DEFAULT '',
		outcome       TEXT NOT NULL,
		artifact_path TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS audit_records_credential_idx
		ON audit_records (credential_id, created_at);`,
}

// Migrate applies the embedded schema. Idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
