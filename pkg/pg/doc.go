// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations, and a readiness probe. The API
// surface is deliberately small; callers work with *pgxpool.Pool directly.
package pg
