package postgres_test

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/LucasSiw/apetrecho-core/internal/storage/postgres"
)

// startPostgres runs a throwaway PostgreSQL container, connects a pool with
// decimal support, and applies the embedded schema.
func startPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, *pgxpool.Pool, error) {
	container, err := tcpostgres.Run(ctx, "postgres:17.6-alpine3.22",
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := postgres.NewPool(ctx, connStr)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.NewPool: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return nil, nil, fmt.Errorf("postgres.RunMigrations: %w", err)
	}

	return container, pool, nil
}
