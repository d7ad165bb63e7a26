package common

import (
	"context"
	"os"
	"testing"
	"time"

	pgMigration "roomsvc/internal/migrations/postgres"
	"roomsvc/pkg/db/postgres"

	"github.com/jmoiron/sqlx"
)

const (
	EnvTestDatabaseURL = "TEST_DATABASE_URL"
	ConnectionTimeout  = 10 * time.Second
)

// PostgresHelper wraps the test database connection. Tests are skipped when
// TEST_DATABASE_URL is not set so the suite never needs a live database to
// compile and run the rest of the tests.
type PostgresHelper struct {
	DB *sqlx.DB
}

func NewPostgresHelper(t *testing.T) *PostgresHelper {
	t.Helper()

	url := os.Getenv(EnvTestDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping integration test", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.Options{
		URL:          url,
		ConnTimeout:  ConnectionTimeout,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pgMigration.RunMigration(ctx, db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &PostgresHelper{DB: db}
}

func (p *PostgresHelper) Close(t *testing.T) {
	t.Helper()
	if err := p.DB.Close(); err != nil {
		t.Logf("warning: failed to close test database: %v", err)
	}
}

// CleanDatabase wipes all rows between tests. Truncation cascades to
// reservations through the foreign key.
func (p *PostgresHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	if _, err := p.DB.ExecContext(ctx, `TRUNCATE meeting_rooms RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

func (p *PostgresHelper) CountRooms(t *testing.T) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	var count int
	if err := p.DB.GetContext(ctx, &count, `SELECT count(*) FROM meeting_rooms`); err != nil {
		t.Fatalf("failed to count rooms: %v", err)
	}
	return count
}
