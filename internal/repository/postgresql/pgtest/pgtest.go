// Package pgtest connects integration tests to TEST_DATABASE_URL and seeds fixtures.
package pgtest

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/attendly/attendly-backend/internal/pkg/database"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schema string

var ErrNoTestDatabase = errors.New("TEST_DATABASE_URL is not set")

// TestDatabaseSetup holds the connection used by integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and makes sure the tables exist.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, ErrNoTestDatabase
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply test schema: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// Require returns a clean database for t, or skips t when none is configured.
func Require(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if errors.Is(err, ErrNoTestDatabase) {
		t.Skip("integration test: TEST_DATABASE_URL is not set")
	}
	if err != nil {
		t.Fatalf("test database: %v", err)
	}

	if err := setup.TruncateAllTables(ctx); err != nil {
		setup.Close()
		t.Fatalf("truncate tables: %v", err)
	}
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables removes every row written by a test.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"subjects",
		"semesters",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateUser inserts a user whose password is "password123" and returns its id.
func (t *TestDatabaseSetup) CreateUser(ctx context.Context, email string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	_, err = t.DB.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, 'Test User', $2, $3)
	`, id.String(), email, string(hashedPassword))
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// CreateSemester inserts a semester running from today for 120 days.
func (t *TestDatabaseSetup) CreateSemester(ctx context.Context, userID string, name string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	_, err = t.DB.Exec(ctx, `
		INSERT INTO semesters (id, user_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id.String(), userID, name, start, start.AddDate(0, 0, 120))
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Close closes the database pool.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
