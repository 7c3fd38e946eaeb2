package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/storage/postgres"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func runMigrations(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	// start container
	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	// create postgres instance
	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	// run migrations
	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	err = runMigrations(pgSQL.DB.(*sql.DB), migrationsDir)
	require.NoError(t, err)

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = pgContainer.Container.Terminate(ctx)
	}
}

// testTimestamp returns a fixed base instant offset by n seconds. Postgres
// stores microseconds at most, so tests stick to whole seconds.
func testTimestamp(n int) time.Time {
	return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second)
}

// newCustomer inserts a fresh customer and returns its id.
func newCustomer(t *testing.T, pg *postgres.PgSQL) domain.CustomerID {
	t.Helper()

	id := domain.CustomerID(uuid.New())
	require.NoError(t, pg.UpsertCustomer(context.Background(), domain.Customer{
		ID:    id,
		Email: "customer@corp.com",
	}))

	return id
}

// newEmail builds an email owned by customerID with caller-controlled
// timestamps.
func newEmail(customerID domain.CustomerID, createdAt time.Time) domain.Email {
	return domain.Email{
		ID:         domain.EmailID(uuid.New()),
		CustomerID: customerID,
		To:         "victim@corp.com",
		From:       "attacker@evil.com",
		Subject:    "Invoice attached",
		Body:       "pay at http://evil.com/now",
		Metadata:   "1|14",
		Status:     domain.EmailStatusScanned,
		Malicious:  false,
		Domains:    []string{"evil.com"},
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func storeEmail(t *testing.T, pg *postgres.PgSQL, email domain.Email, occurrences []domain.DomainOccurrence) *domain.Email {
	t.Helper()

	stored, err := pg.StoreEmail(context.Background(), email, occurrences)
	require.NoError(t, err)
	require.NotNil(t, stored)

	return stored
}
