// Package mongo implements the repositories over MongoDB. Users,
// appointments and invoices are keyed by ObjectID; patient and doctor
// profiles reuse the owning user's id as their _id.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectTimeout = 10 * time.Second

// Config carries the connection settings for the clinical datastore.
type Config struct {
	URI      string
	Database string
	// ConnectTimeout bounds dialing plus the startup ping. Zero means 10s.
	ConnectTimeout time.Duration
}

// Connect dials MongoDB, pings it, and returns the client together with the
// configured database handle. The ping keeps a dead datastore from being
// discovered on the first request instead of at startup.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
