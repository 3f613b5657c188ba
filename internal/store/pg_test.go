package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

var (
	testDB      *gorm.DB
	testDSN     string
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// TEST_DB_HOST points the suite at an external database instead of a container
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	testDSN = dsn

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the database schema
	err = initializeTestDatabase(testDB)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// initializeTestDatabase runs the schema initialization and seed data
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	_, err = sqlDB.Exec(string(schemaSQL))
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// Optional seed data
	seedPath := filepath.Join("..", "..", "db", "pg_test_data.sql")
	if _, err := os.Stat(seedPath); err == nil {
		seedSQL, err := os.ReadFile(seedPath) //nolint:gosec,G304
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}

		_, err = sqlDB.Exec(string(seedSQL))
		if err != nil {
			return fmt.Errorf("failed to execute seed data: %w", err)
		}
	}

	return nil
}

// initPGTestDB returns a store bound to a transaction that is rolled back when the test ends
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op, the transaction rollback in initPGTestDB restores state
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestClaimTask_Concurrent races several claimers over committed rows, which a
// rolled back transaction cannot exercise
func TestClaimTask_Concurrent(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	s := NewPGStore(testDB)

	task := &schema.Task{
		Handler:  domain.TaskHandlerHistorySyncResolver,
		Params:   datatypes.JSON(`{"id":"race"}`),
		StartAt:  time.Now().Add(-time.Second),
		Status:   domain.TaskStatusPending,
		Priority: domain.DefaultTaskPriority,
		Topic:    domain.DefaultTaskTopic,
	}
	require.NoError(t, s.CreateTask(ctx, task))
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM tasks WHERE id = ?", task.ID)
	})

	const claimers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range claimers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.ClaimTask(ctx, task.ID, fmt.Sprintf("claimer-%d", i))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	stored, err := s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusProcessing, stored.Status)
	assert.Regexp(t, `^claimer-\d+$`, stored.DispatchToken)
}

// TestAcquireTask_Concurrent spends one dispatch token from several deliveries
func TestAcquireTask_Concurrent(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	s := NewPGStore(testDB)

	task := &schema.Task{
		Handler:       domain.TaskHandlerHistorySyncResolver,
		Params:        datatypes.JSON(`{"id":"acquire"}`),
		StartAt:       time.Now().Add(-time.Second),
		Status:        domain.TaskStatusProcessing,
		Priority:      domain.DefaultTaskPriority,
		Topic:         domain.DefaultTaskTopic,
		DispatchToken: "dispatch-1",
	}
	require.NoError(t, s.CreateTask(ctx, task))
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM tasks WHERE id = ?", task.ID)
	})

	const deliveries = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.AcquireTask(ctx, task.ID, "dispatch-1")
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

// TestOpen_ReadReplica points the replica at the primary so reads served by
// the resolver see committed rows
func TestOpen_ReadReplica(t *testing.T) {
	if testDSN == "" {
		t.Fatal("Test database not initialized")
	}

	db, err := Open(testDSN, testDSN, false)
	require.NoError(t, err)
	assert.True(t, hasDBResolver(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	s := NewPGStore(db)
	contract, created, err := s.CreateContract(ctx, &schema.Contract{
		Network:     domain.NetworkEthereum,
		Address:     "0x00000000000000000000000000000000000000aa",
		Name:        "replica",
		StartHeight: 1,
		Enabled:     true,
	})
	require.NoError(t, err)
	require.True(t, created)
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM contracts WHERE id = ?", contract.ID)
	})

	got, err := s.GetContractByID(ctx, contract.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "replica", got.Name)

	plain, err := Open(testDSN, "", false)
	require.NoError(t, err)
	assert.False(t, hasDBResolver(plain))
	if sqlDB, err := plain.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
