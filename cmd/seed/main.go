// Command seed populates the database with an admin user and a small
// sample catalogue. It is idempotent: rerunning it leaves existing rows
// alone.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/config"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/database"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

type sampleProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
	imageURL    string
}

var sampleCategories = []model.CategoryRequest{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Clothing", Description: "Apparel and fashion items"},
	{Name: "Books", Description: "Books and educational materials"},
	{Name: "Home & Kitchen", Description: "Home appliances and kitchenware"},
}

var sampleProducts = []sampleProduct{
	{"Smartphone", "Latest model smartphone with advanced features", "699.99", 50, "Electronics", "https://placehold.co/800x600?text=Smartphone"},
	{"Laptop", "High-performance laptop for work and gaming", "1299.99", 30, "Electronics", "https://placehold.co/800x600?text=Laptop"},
	{"T-Shirt", "Comfortable cotton t-shirt", "19.99", 100, "Clothing", "https://placehold.co/800x600?text=T-Shirt"},
	{"JavaScript Guide", "Comprehensive guide to JavaScript programming", "39.99", 75, "Books", "https://placehold.co/800x600?text=JavaScript+Guide"},
	{"Coffee Maker", "Automatic coffee maker with timer", "89.99", 25, "Home & Kitchen", "https://placehold.co/800x600?text=Coffee+Maker"},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedAdmin(ctx, pool); err != nil {
		return err
	}
	if err := seedCatalogue(ctx, pool); err != nil {
		return err
	}

	logger.Info().Msg("seed complete")
	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	email := envOr("ADMIN_EMAIL", "admin@ecommerce.com")
	password := envOr("ADMIN_PASSWORD", "Admin@123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		VALUES ($1, 'Admin User', $2, $3, $4, now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), email, string(hash), model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}

func seedCatalogue(ctx context.Context, pool *pgxpool.Pool) error {
	categoryIDs := make(map[string]uuid.UUID, len(sampleCategories))

	for _, c := range sampleCategories {
		var id uuid.UUID
		err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1 AND is_deleted = FALSE`, c.Name).Scan(&id)
		if err != nil {
			id = uuid.New()
			if _, err := pool.Exec(ctx, `
				INSERT INTO categories (id, name, description, created_at, updated_at)
				VALUES ($1, $2, $3, now(), now())
			`, id, c.Name, c.Description); err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
		}
		categoryIDs[c.Name] = id
	}

	for _, p := range sampleProducts {
		var exists bool
		if err := pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND is_deleted = FALSE)
		`, p.name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check product %s: %w", p.name, err)
		}
		if exists {
			continue
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("bad sample price for %s: %w", p.name, err)
		}

		if _, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, description, price, stock, category_id, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, uuid.New(), p.name, p.description, price, p.stock, categoryIDs[p.category], p.imageURL); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
