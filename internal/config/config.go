package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads .env when present; otherwise the process environment stands.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ No .env file found — using system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// Getenv returns the env value or a default.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
