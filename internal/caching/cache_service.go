package caching

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Subscription status caching (read by the route guard on every request)
	GetSubscriptionStatus(ctx context.Context, userID uuid.UUID) (string, bool, error)
	SetSubscriptionStatus(ctx context.Context, userID uuid.UUID, status string, ttl time.Duration) error
	DeleteSubscriptionStatus(ctx context.Context, userID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis:// URLs
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func subscriptionStatusKey(userID uuid.UUID) string {
	return fmt.Sprintf("cobrafacil:subscription:%s", userID.String())
}

// GetSubscriptionStatus returns the cached status and whether the key existed.
func (r *redisCacheService) GetSubscriptionStatus(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	status, err := r.client.Get(ctx, subscriptionStatusKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil // cache miss
		}
		return "", false, err
	}
	return status, true, nil
}

func (r *redisCacheService) SetSubscriptionStatus(ctx context.Context, userID uuid.UUID, status string, ttl time.Duration) error {
	return r.client.Set(ctx, subscriptionStatusKey(userID), status, ttl).Err()
}

func (r *redisCacheService) DeleteSubscriptionStatus(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, subscriptionStatusKey(userID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
