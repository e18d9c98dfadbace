package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	// VersionKey tracks a global submission version for efficient change
	// detection. Leaderboard views are never cached; the counter only tells
	// connected clients that a refetch is worth it.
	VersionKey = "puzzleboard:version"
)

// RedisRepository handles all Redis operations
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
	}
}

// BumpVersion increments the global submission version. Called after every
// accepted score so watchers know a leaderboard may have changed.
func (r *RedisRepository) BumpVersion(ctx context.Context) error {
	return r.client.Incr(ctx, VersionKey).Err()
}

// GetVersion returns the current global version number
func (r *RedisRepository) GetVersion(ctx context.Context) (int64, error) {
	version, err := r.client.Get(ctx, VersionKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // Version not set yet, return 0
		}
		return 0, err
	}
	return version, nil
}

// Ping checks if Redis is reachable
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
