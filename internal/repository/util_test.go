package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type testEnv struct {
	pool        *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	queries     *Queries
}

func setupTestEnv(t *testing.T, c context.Context) testEnv {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "migrations", "20250312094510_create_table_users.up.sql"),
			filepath.Join("..", "..", "migrations", "20250312094623_create_table_products.up.sql"),
			filepath.Join("..", "..", "migrations", "20250312094717_create_table_carts.up.sql"),
			filepath.Join("..", "..", "migrations", "20250312094805_create_table_orders.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgxpool config with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	return testEnv{
		pool:        pool,
		pgContainer: pgContainer,
		queries:     New(pool),
	}
}

func (e testEnv) teardown(t *testing.T) {
	t.Helper()

	e.pool.Close()
	if err := testcontainers.TerminateContainer(e.pgContainer); err != nil {
		t.Fatalf("failed to terminate postgres container: %s", err)
	}
}
