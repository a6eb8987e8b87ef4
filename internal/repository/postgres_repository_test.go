package repository

import (
	"context"
	"testing"
	"time"

	"menu-app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestContainer starts a PostgreSQL testcontainer and returns its connection string.
func setupTestContainer(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return connStr
}

// connect opens a session connection that is closed when the test ends.
func connect(t *testing.T, connStr string) *pgx.Conn {
	t.Helper()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close(ctx)
	})

	return conn
}

func TestPostgresMenuRepository(t *testing.T) {
	connStr := setupTestContainer(t)

	testRepositoryBehaviour(t, func(t *testing.T) MenuItemRepository {
		repo, err := NewPostgresMenuRepository(context.Background(), connect(t, connStr), zerolog.Nop())
		require.NoError(t, err)
		return repo
	})
}

func TestPostgresMenuRepository_DuplicateID(t *testing.T) {
	connStr := setupTestContainer(t)
	ctx := context.Background()

	repo, err := NewPostgresMenuRepository(ctx, connect(t, connStr), zerolog.Nop())
	require.NoError(t, err)
	repo.(*postgresMenuRepository).newID = func() string { return "fixed-id" }

	_, err = repo.Append(ctx, newItem("First", model.CourseMains, "9.00"))
	require.NoError(t, err)

	_, err = repo.Append(ctx, newItem("Second", model.CourseMains, "9.00"))
	require.Error(t, err)
	assert.Equal(t, model.ErrDuplicateID, err)
}

func TestPostgresMenuRepository_RejectsUnknownCourse(t *testing.T) {
	connStr := setupTestContainer(t)
	ctx := context.Background()

	repo, err := NewPostgresMenuRepository(ctx, connect(t, connStr), zerolog.Nop())
	require.NoError(t, err)

	_, err = repo.Append(ctx, newItem("Fries", model.Course("Sides"), "3.00"))
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgresMenuRepository_SessionScoped(t *testing.T) {
	connStr := setupTestContainer(t)
	ctx := context.Background()

	first, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)

	repo, err := NewPostgresMenuRepository(ctx, first, zerolog.Nop())
	require.NoError(t, err)
	_, err = repo.Append(ctx, newItem("Soup", model.CourseStarters, "5.50"))
	require.NoError(t, err)

	// A second session never sees the first session's menu.
	other, err := NewPostgresMenuRepository(ctx, connect(t, connStr), zerolog.Nop())
	require.NoError(t, err)
	count, err := other.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Closing the owning connection ends the session.
	require.NoError(t, first.Close(ctx))

	next, err := NewPostgresMenuRepository(ctx, connect(t, connStr), zerolog.Nop())
	require.NoError(t, err)
	count, err = next.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgresMenuRepository_ErrorPaths(t *testing.T) {
	connStr := setupTestContainer(t)
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)

	repo, err := NewPostgresMenuRepository(ctx, conn, zerolog.Nop())
	require.NoError(t, err)

	// Close the connection to simulate database errors
	require.NoError(t, conn.Close(ctx))

	t.Run("List with closed connection", func(t *testing.T) {
		items, err := repo.List(ctx)

		require.Error(t, err)
		assert.Nil(t, items)
	})

	t.Run("GetByID with closed connection", func(t *testing.T) {
		item, err := repo.GetByID(ctx, "any")

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("Append with closed connection", func(t *testing.T) {
		item, err := repo.Append(ctx, newItem("Soup", model.CourseStarters, "5.50"))

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("Count with closed connection", func(t *testing.T) {
		_, err := repo.Count(ctx)

		require.Error(t, err)
	})
}
