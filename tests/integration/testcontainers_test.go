// Package integration provides integration tests for the digisvar services
// against real Postgres and Redis instances.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"
)

// PostgresSetup holds a running Postgres test container.
type PostgresSetup struct {
	Container testcontainers.Container
	ConnStr   string
}

// SetupPostgres starts a Postgres container for analytics store tests.
func SetupPostgres(t *testing.T) *PostgresSetup {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("digisvar_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &PostgresSetup{
		Container: pgContainer,
		ConnStr: fmt.Sprintf("postgres://test:test@%s:%s/digisvar_test?sslmode=disable",
			host, port.Port()),
	}
}

// RedisSetup holds a running Redis test container.
type RedisSetup struct {
	Container testcontainers.Container
	Addr      string
}

// SetupRedis starts a Redis container for cache tests.
func SetupRedis(t *testing.T) *RedisSetup {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	redisContainer, err := redis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return &RedisSetup{
		Container: redisContainer,
		Addr:      fmt.Sprintf("%s:%s", host, port.Port()),
	}
}
