package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Probe runs a trivial SELECT 1 against the pool with a bounded timeout.
// It is a liveness check only; it says nothing about measure data state.
func Probe(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var one int
	return pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}
