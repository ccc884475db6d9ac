package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Tawatchai-03/clinic-frontend/config"
)

var (
	// SessionClient is the client for the persisted login sessions.
	SessionClient *redis.Client
	// WorkClient is the client for short-lived workflow state (booking
	// sessions, day-edit drafts).
	WorkClient *redis.Client
)

// InitSessionStore initializes the Redis client holding login sessions.
func InitSessionStore() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the login session client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionStore()
	}
	return SessionClient
}

// InitWorkStore initializes the Redis client for workflow state.
func InitWorkStore() {
	WorkClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := WorkClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Workflow): %v", err)
	}
}

// GetWorkClient returns the workflow state client.
func GetWorkClient() *redis.Client {
	if WorkClient == nil {
		InitWorkStore()
	}
	return WorkClient
}
