package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/database"
)

const postgresImage = "postgres:16-alpine"

var (
	sharedDB     *gorm.DB
	sharedDBOnce sync.Once
	sharedDBErr  error
)

// GetTestDB returns a migrated database in a shared PostgreSQL container.
// The container is created once and reused across the package's tests. Tests
// are skipped in short mode or when no container runtime is available.
func GetTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})

	if sharedDBErr != nil {
		t.Skipf("Skipping integration test, database unavailable: %v", sharedDBErr)
	}

	ResetTables(t, sharedDB)
	return sharedDB
}

func setupTestDB() (*gorm.DB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "ideahub_test",
			"POSTGRES_USER":     "ideahub",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=ideahub password=test_password dbname=ideahub_test sslmode=disable TimeZone=UTC",
		host, port.Port())

	var db *gorm.DB
	// Verify connection with retry
	for i := 0; i < 10; i++ {
		if db, err = database.Open(dsn); err == nil {
			if err = database.Ping(db); err == nil {
				break
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	return db, nil
}

// ResetTables empties every table between tests.
func ResetTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec(`TRUNCATE users, ideas, likes, comments, collaboration_requests, notifications, system_logs CASCADE`).Error
	if err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}
}
