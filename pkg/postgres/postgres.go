package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jakechorley/gameday/pkg/core/attendance"
)

// DB provides database operations using PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

// NewDB creates a new PostgreSQL database connection
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.pool.Close()
}

// Ping reports store reachability for health checks
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Postgres error codes the store distinguishes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// storeError maps a pgx error onto the model's error taxonomy. Zero rows
// on a single-result query map to NotFound; constraint failures map to
// ConstraintViolation; everything else is a transport-level failure.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.ErrNotFound("%s: no matching row", op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return attendance.ErrConstraintViolation(op, err)
		}
	}
	return attendance.ErrStoreUnavailable(op, err)
}
