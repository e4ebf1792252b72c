package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"fishplant-backend/internal/models"
)

// Master data cache keys.
const (
	masterDataKey      = "master:data"
	masterFetchedAtKey = "master:fetched_at"
)

var client *redis.Client

// Init initializes the Redis connection. Failure is non-fatal: every helper
// no-ops on a nil client and the master service keeps a memory copy.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, or nil when the cache is unavailable.
func GetClient() *redis.Client {
	return client
}

// GetMaster returns the cached master data and its fetch time.
func GetMaster(ctx context.Context) (models.Master, time.Time, bool) {
	if client == nil {
		return nil, time.Time{}, false
	}
	raw, err := client.Get(ctx, masterDataKey).Bytes()
	if err != nil {
		return nil, time.Time{}, false
	}
	var m models.Master
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, time.Time{}, false
	}
	unix, err := client.Get(ctx, masterFetchedAtKey).Int64()
	if err != nil {
		return nil, time.Time{}, false
	}
	return m, time.Unix(unix, 0), true
}

// SetMaster stores the master data with its fetch timestamp. No TTL on the
// keys themselves: staleness is judged against the timestamp so an expired
// copy can still serve as the previous value after a failed reload.
func SetMaster(ctx context.Context, m models.Master, fetchedAt time.Time) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	client.Set(ctx, masterDataKey, raw, 0)
	client.Set(ctx, masterFetchedAtKey, fetchedAt.Unix(), 0)
}
