// Package cache keeps the Redis read-through cache for the sweet catalogue.
// Every helper is a no-op when Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/database"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

const (
	sweetsAllKey  = "sweets:all"
	SweetCacheTTL = 10 * time.Minute
)

// GetSweetList returns the cached unfiltered catalogue, or false on miss.
func GetSweetList(ctx context.Context) ([]models.Sweet, bool) {
	if database.Redis == nil {
		return nil, false
	}
	val, err := database.Redis.Get(ctx, sweetsAllKey).Result()
	if err != nil || val == "" {
		return nil, false
	}
	var sweets []models.Sweet
	if err := json.Unmarshal([]byte(val), &sweets); err != nil {
		return nil, false
	}
	return sweets, true
}

// SetSweetList caches the unfiltered catalogue.
func SetSweetList(ctx context.Context, sweets []models.Sweet) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(sweets)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, sweetsAllKey, data, SweetCacheTTL)
}

// InvalidateSweets drops the catalogue cache after any sweet mutation,
// purchase and restock included.
func InvalidateSweets(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, sweetsAllKey)
}
