package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/config"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/database"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/postgres"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/routes"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/users"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/utils"
)

func main() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	invStore, usrStore, cleanup := buildStores(ctx)
	defer cleanup()

	database.Connect()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:5174"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, invStore, usrStore)

	port := config.Getenv("PORT", "3001")
	log.Println("🚀 Sweet Shop API listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}

// buildStores picks the storage backend. With DATABASE_URL set the stores
// share one pgx pool; without it the API runs on in-memory stores seeded
// with sample data, which is enough for local frontend work.
func buildStores(ctx context.Context) (inventory.Store, users.Store, func()) {
	dsn := config.Getenv("DATABASE_URL", "")
	if dsn == "" {
		log.Println("⚠️ DATABASE_URL not set, using in-memory stores")
		inv := inventory.NewMemStore()
		inv.Seed()
		usr := users.NewMemStore()
		seedAdmin(ctx, usr)
		return inv, usr, func() {}
	}

	pool, err := postgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatal("❌ PostgreSQL connection failed:", err)
	}
	log.Println("✅ PostgreSQL connected")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal("❌ Migration failed:", err)
	}
	if config.Getenv("SEED_DB", "") == "true" {
		if err := postgres.Seed(ctx, pool); err != nil {
			log.Fatal("❌ Seeding failed:", err)
		}
		log.Println("✅ Database seeded")
	}

	return postgres.NewInventoryStore(pool), postgres.NewUserStore(pool), pool.Close
}

func seedAdmin(ctx context.Context, usr users.Store) {
	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatal("❌ Admin seed failed:", err)
	}
	admin := models.User{
		Name:     "Admin User",
		Email:    "admin@sweetshop.com",
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := usr.Create(ctx, &admin); err != nil {
		log.Fatal("❌ Admin seed failed:", err)
	}
}
