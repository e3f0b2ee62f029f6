//go:build integration

package repository

import (
	"context"
	"testing"

	"address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	require.NoError(t, EnsureSchema(ctx, pool))
	// a second call must be a no-op
	require.NoError(t, EnsureSchema(ctx, pool))

	return pool
}

func ptr(f float64) *float64 { return &f }

func TestRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Address{}, empty)

	tokyo, err := repo.Create(ctx, models.AddressInput{
		Name:      "Tokyo Station",
		Address:   "1 Chome Marunouchi, Chiyoda City",
		Latitude:  ptr(35.681236),
		Longitude: ptr(139.767125),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tokyo.ID)

	akasaka, err := repo.Create(ctx, models.AddressInput{
		Name:      "Akasaka",
		Address:   "1 Chome Akasaka, Minato City",
		Latitude:  ptr(35.675),
		Longitude: ptr(139.732),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), akasaka.ID)

	updated, err := repo.Update(ctx, akasaka.ID, models.AddressInput{
		Name:      "Akasaka Office",
		Address:   "2 Chome Akasaka, Minato City",
		Latitude:  ptr(35.676),
		Longitude: ptr(139.733),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Address{
		ID:        2,
		Name:      "Akasaka Office",
		Address:   "2 Chome Akasaka, Minato City",
		Latitude:  35.676,
		Longitude: 139.733,
	}, updated)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Address{tokyo, updated}, all)

	require.NoError(t, repo.Delete(ctx, tokyo.ID))

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Address{updated}, all)
}

func TestRepository_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	_, err := repo.Update(ctx, 999, models.AddressInput{
		Name:      "ghost",
		Address:   "nowhere",
		Latitude:  ptr(0),
		Longitude: ptr(0),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 999), models.ErrNotFound)
}

func TestRepository_StoreUnavailable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	pool.Close()

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}
