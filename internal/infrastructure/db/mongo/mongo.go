package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setupTimeout = 10 * time.Second

// Config captures the settings for the credential store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes the client, verifies connectivity with a ping, and
// bootstraps the unique indexes the store depends on. The returned database
// already enforces username and email uniqueness, so callers never race an
// unindexed collection.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = setupTimeout
	}

	setupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(setupCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(setupCtx, nil); err != nil {
		_ = client.Disconnect(setupCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := NewUserRepository(db).EnsureIndexes(setupCtx); err != nil {
		_ = client.Disconnect(setupCtx)
		return nil, nil, err
	}

	return client, db, nil
}
