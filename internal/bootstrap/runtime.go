// Package bootstrap connects the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"saathi/internal/cache"
	"saathi/internal/config"
	"saathi/internal/database"
	"saathi/internal/observability"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Runtime holds the connected stores. Redis is nil when it is not configured
// or unreachable.
type Runtime struct {
	DB    *mongo.Database
	Redis *redis.Client
}

// InitRuntime connects to MongoDB, ensures indexes and connects to Redis if
// configured.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	client, db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.NewGateway(db).EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	rt := &Runtime{DB: db}
	if cfg.RedisURL == "" {
		observability.Logger.Warn("REDIS_URL not set; running without cache")
		return rt, nil
	}

	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		observability.Logger.Warn("Redis unavailable; running without cache",
			slog.String("error", err.Error()),
		)
		return rt, nil
	}
	rt.Redis = rdb
	return rt, nil
}

// Close releases the connections held by the runtime.
func (r *Runtime) Close(ctx context.Context) {
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.DB != nil {
		_ = r.DB.Client().Disconnect(ctx)
	}
}
