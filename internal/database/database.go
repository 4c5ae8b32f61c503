// Package database handles MongoDB connections, index bootstrap and the storage gateway.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"saathi/internal/config"
	"saathi/internal/observability"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const slowCommandThreshold = 200 * time.Millisecond

// NewCommandMonitor integrates driver command events with slog. Failures are
// logged at error level and commands slower than threshold at warn level.
func NewCommandMonitor(logger *slog.Logger, threshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if threshold == 0 || evt.Duration <= threshold {
				return
			}
			logger.WarnContext(ctx, "MongoDB slow command",
				slog.String("command", evt.CommandName),
				slog.Duration("elapsed", evt.Duration),
			)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			logger.ErrorContext(ctx, "MongoDB command error",
				slog.String("command", evt.CommandName),
				slog.Duration("elapsed", evt.Duration),
				slog.String("error", evt.Failure),
			)
		},
	}
}

// Connect opens a pooled MongoDB client, verifies it with a ping and returns
// the client together with the configured database handle.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	timeout := time.Duration(cfg.MongoTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.MongoConnectionURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMonitor(NewCommandMonitor(observability.Logger, slowCommandThreshold)).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetConnectTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	observability.Logger.Info("Database connected successfully",
		slog.String("database", cfg.MongoDatabase),
	)

	return client, client.Database(cfg.MongoDatabase), nil
}
