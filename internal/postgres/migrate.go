package postgres

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/utils"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'employee',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sweets (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users (id),
		total NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders (id),
		sweet_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC(10,2) NOT NULL
	)`,
}

// Migrate creates the four tables when missing. The quantity CHECK is a
// backstop only; the transaction manager enforces the invariant.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	log.Println("✅ Database migration completed")
	return nil
}

// Seed installs the admin account and sample catalogue when absent,
// mirroring the original seed script.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var id int
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "admin@sweetshop.com").Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4)`,
			"Admin User", "admin@sweetshop.com", hash, models.RoleAdmin); err != nil {
			return err
		}
		log.Println("✅ Admin user created")
	} else if err != nil {
		return err
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM sweets`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []models.Sweet{
		{Name: "Gulab Jamun", Category: "Traditional", Price: 12.99, Quantity: 50, Description: "Soft milk dumplings in rose-scented syrup"},
		{Name: "Chocolate Truffle", Category: "Chocolate", Price: 8.50, Quantity: 30, Description: "Dark chocolate ganache truffles"},
		{Name: "Rasgulla", Category: "Traditional", Price: 10.00, Quantity: 40, Description: "Spongy cottage cheese balls in light syrup"},
		{Name: "Strawberry Cupcake", Category: "Bakery", Price: 4.25, Quantity: 0, Description: "Vanilla cupcake with strawberry frosting"},
	}
	for _, s := range seeds {
		if _, err := pool.Exec(ctx,
			`INSERT INTO sweets (name, category, price, quantity, description) VALUES ($1, $2, $3, $4, $5)`,
			s.Name, s.Category, s.Price, s.Quantity, s.Description); err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d sweets", len(seeds))
	return nil
}
