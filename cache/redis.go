package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/redis/go-redis/v9"
)

const (
	roomClassKey = "catalog:room-classes"
	catalogTTL   = 5 * time.Minute
)

// Catalog caches the public room-class listing in Redis. A nil *Catalog is
// valid and skips caching entirely, so the service runs without Redis.
type Catalog struct {
	client *redis.Client
}

// Connect builds a Catalog from REDIS_ADDR. Returns nil when unset or when
// the server is unreachable; callers treat that as "no cache".
func Connect() *Catalog {
	addr := utils.EnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.EnvOrDefault("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis at %s not reachable, catalog cache disabled: %v", addr, err)
		return nil
	}
	log.Printf("✅ Redis catalog cache connected (%s)", addr)
	return &Catalog{client: client}
}

// GetRoomClasses returns the cached listing and whether it was present.
func (c *Catalog) GetRoomClasses(ctx context.Context) ([]models.RoomClass, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, roomClassKey).Bytes()
	if err != nil {
		return nil, false
	}
	var classes []models.RoomClass
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, false
	}
	return classes, true
}

// SetRoomClasses stores the listing, best effort.
func (c *Catalog) SetRoomClasses(ctx context.Context, classes []models.RoomClass) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(classes)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roomClassKey, raw, catalogTTL).Err(); err != nil {
		log.Printf("warning: failed to cache room classes: %v", err)
	}
}

// InvalidateRoomClasses drops the cached listing after a catalog write.
func (c *Catalog) InvalidateRoomClasses(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, roomClassKey).Err(); err != nil {
		log.Printf("warning: failed to invalidate room class cache: %v", err)
	}
}
