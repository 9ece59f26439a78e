package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ConnectPostgres opens a pgx pool for dsn and pings it.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB connection string: %w", err)
	}
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// PostgresSchema creates the lead and payment tables when they do not exist.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS patients (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL UNIQUE,
	cpf                 TEXT NOT NULL DEFAULT '',
	phone               TEXT NOT NULL,
	quiz_responses      JSONB NOT NULL DEFAULT '{}'::jsonb,
	gateway_customer_id TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
	id                  TEXT PRIMARY KEY,
	patient_id          TEXT NOT NULL REFERENCES patients(id),
	provider            TEXT NOT NULL,
	gateway_payment_id  TEXT NOT NULL,
	gateway_customer_id TEXT NOT NULL,
	amount              NUMERIC(12,2) NOT NULL,
	due_date            TEXT NOT NULL,
	status              TEXT NOT NULL DEFAULT '',
	payment_url         TEXT NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS payments_patient_id_idx ON payments (patient_id, created_at DESC);
`

// MigratePostgres applies PostgresSchema.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
