package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/case-engine/pkg/world"
)

// worldStateTTL is how long an idle session survives in Redis.
const worldStateTTL = 24 * time.Hour

// RedisStorage implements Storage using Redis for world snapshots and
// the filesystem for authored casefiles.
type RedisStorage struct {
	casefileDir
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance.
func NewRedisStorage(redisURL, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		casefileDir: casefileDir{dataDir: dataDir, logger: logger},
		client:      rdb,
		logger:      logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func worldStateKey(id uuid.UUID) string {
	return "worldstate:" + id.String()
}

func (r *RedisStorage) SaveWorldState(ctx context.Context, id uuid.UUID, w *world.WorldState) error {
	w.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(w)
	if err != nil {
		r.logger.Error("Failed to marshal world state", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal world state: %w", err)
	}

	if err := r.client.Set(ctx, worldStateKey(id), string(data), worldStateTTL).Err(); err != nil {
		r.logger.Error("Failed to save world state", "uuid", id, "error", err)
		return fmt.Errorf("failed to save world state: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*world.WorldState, error) {
	cmd := r.client.Get(ctx, worldStateKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("World state not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load world state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var w world.WorldState
	if err := json.Unmarshal([]byte(cmd.Val()), &w); err != nil {
		r.logger.Error("Failed to unmarshal world state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}

	return &w, nil
}

func (r *RedisStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, worldStateKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete world state", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete world state: %w", err)
	}
	return nil
}
