package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"booklending-service/internal/domain/entities"
)

type RedisService struct {
	client *redis.Client
}

// NewRedisService connects using REDIS_URL when set, falling back to
// host/port/password settings.
func NewRedisService(redisURL, host, port, password string, db int) (*RedisService, error) {
	var client *redis.Client

	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     host + ":" + port,
			Password: password,
			DB:       db,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisService{client: client}, nil
}

func (r *RedisService) SetToken(ctx context.Context, token, userID string, expiry time.Duration) error {
	return r.client.Set(ctx, "token:"+token, userID, expiry).Err()
}

func (r *RedisService) DeleteKey(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisService) SetProfile(ctx context.Context, userID string, user *entities.User, expiry time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "profile:"+userID, data, expiry).Err()
}

// GetProfile returns the cached profile, or nil on a cache miss.
func (r *RedisService) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	data, err := r.client.Get(ctx, "profile:"+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user entities.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisService) SetStats(ctx context.Context, userID string, stats interface{}, expiry time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "stats:"+userID, data, expiry).Err()
}

// GetStats unmarshals cached stats into out and reports whether the key was
// present.
func (r *RedisService) GetStats(ctx context.Context, userID string, out interface{}) (bool, error) {
	data, err := r.client.Get(ctx, "stats:"+userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisService) Close() error {
	return r.client.Close()
}
