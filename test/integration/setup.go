package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"menu-app/internal/config"
	"menu-app/internal/database"
	"menu-app/internal/handler"
	"menu-app/internal/repository"
	"menu-app/internal/router"
	"menu-app/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Config    config.DatabaseConfig
}

// SetupTestDB starts a PostgreSQL test container.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Config: config.DatabaseConfig{
			Host:           host,
			Port:           port.Int(),
			User:           "testuser",
			Password:       "testpass",
			Database:       "testdb",
			ConnectTimeout: 10,
		},
	}
}

// OpenSession opens a session connection the same way the server does.
// The connection is closed when the test ends unless the test closes it first.
func (db *TestDB) OpenSession(t *testing.T) *pgx.Conn {
	t.Helper()

	ctx := context.Background()

	conn, err := database.Connect(ctx, db.Config, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open session connection: %v", err)
	}

	t.Cleanup(func() {
		if !conn.IsClosed() {
			_ = conn.Close(ctx)
		}
	})

	return conn
}

// NewSessionMenu builds a menu service backed by a fresh session connection.
func (db *TestDB) NewSessionMenu(t *testing.T) (service.MenuService, *pgx.Conn) {
	t.Helper()

	logger := zerolog.Nop()
	conn := db.OpenSession(t)

	repo, err := repository.NewPostgresMenuRepository(context.Background(), conn, logger)
	if err != nil {
		t.Fatalf("failed to create menu repository: %v", err)
	}

	return service.NewMenuService(repo, logger), conn
}

// NewServer wires the HTTP stack around menu.
func NewServer(menu service.MenuService) http.Handler {
	logger := zerolog.Nop()
	return router.New(handler.NewMenuHandler(menu, logger), testAPIKey, logger)
}
