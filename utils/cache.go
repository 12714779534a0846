// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"shiftdesk/config"

	"github.com/go-redis/redis/v8"
)

// ScheduleCacheClient holds published schedules between restarts.
var ScheduleCacheClient *redis.Client

// InitScheduleCache initializes the Redis client for the published schedule cache.
func InitScheduleCache() {
	ScheduleCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisScheduleDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// The cache is a fallback for published schedules; run without it until redis is back.
	if _, err := ScheduleCacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis (Schedule Cache) unreachable, continuing without cache: %v", err)
	}
}

// GetScheduleCacheClient returns the published schedule cache client.
func GetScheduleCacheClient() *redis.Client {
	if ScheduleCacheClient == nil {
		InitScheduleCache()
	}
	return ScheduleCacheClient
}
