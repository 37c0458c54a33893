// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"salonnotify/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// workflowKey maps a booking to its currently active workflow execution.
func workflowKey(bookingID string) string {
	return "workflow:booking:" + bookingID
}

// SetActiveWorkflow records the workflow id currently driving a booking's
// notification timeline. Overwrites any stale entry; the external control
// surface enforces at most one intended active workflow per booking.
func SetActiveWorkflow(ctx context.Context, bookingID, workflowID string) error {
	if err := GetCacheClient().Set(ctx, workflowKey(bookingID), workflowID, 0).Err(); err != nil {
		return fmt.Errorf("failed to register workflow for booking %s: %w", bookingID, err)
	}
	return nil
}

// GetActiveWorkflow looks up the workflow id for a booking. Returns redis.Nil
// wrapped error when no workflow is registered.
func GetActiveWorkflow(ctx context.Context, bookingID string) (string, error) {
	workflowID, err := GetCacheClient().Get(ctx, workflowKey(bookingID)).Result()
	if err != nil {
		return "", fmt.Errorf("no active workflow for booking %s: %w", bookingID, err)
	}
	return workflowID, nil
}

// ClearActiveWorkflow removes the registry entry for a booking.
func ClearActiveWorkflow(ctx context.Context, bookingID string) {
	if err := GetCacheClient().Del(ctx, workflowKey(bookingID)).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to clear workflow registry entry for booking %s: %v", bookingID, err)
	}
}
