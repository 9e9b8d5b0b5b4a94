// Package integration hosts end-to-end tests that run against a real
// PostgreSQL instance in a testcontainer.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/database"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects a pool through
// the application's own pool builder, and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

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

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPoolFromConnString(ctx, connStr, nil)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, name, email, password, role)
		VALUES ($1, 'Test User', $2, 'not-a-real-hash', $3)
	`, id, email, role)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, '')
	`, id, name)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID, name, price string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO products (id, name, description, price, stock, category_id)
		VALUES ($1, $2, '', $3, $4, $5)
	`, id, name, decimal.RequireFromString(price), stock, categoryID)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// ProductStock reads the product's current stock.
func ProductStock(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(),
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return stock
}

// CartStatus reads the cart's current status.
func CartStatus(t *testing.T, pool *pgxpool.Pool, cartID uuid.UUID) string {
	t.Helper()

	var status string
	if err := pool.QueryRow(context.Background(),
		`SELECT status FROM carts WHERE id = $1`, cartID).Scan(&status); err != nil {
		t.Fatalf("failed to read cart status: %v", err)
	}
	return status
}

// CountRows counts rows in the table matching user_id.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, userID uuid.UUID) int {
	t.Helper()

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE user_id = $1", table)
	if err := pool.QueryRow(context.Background(), query, userID).Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return n
}

// CleanupDB deletes all data, keeping the schema.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "carts", "products", "categories", "users"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
