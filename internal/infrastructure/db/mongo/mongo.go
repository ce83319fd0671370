package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// defaultTimeout bounds every repository operation issued against the
	// catalog collections.
	defaultTimeout = 10 * time.Second

	// connectTimeout bounds the startup dial and the verification ping.
	connectTimeout = 15 * time.Second

	appName = "module-catalog"
)

// Connect dials the catalog database and verifies it with a primary ping.
// The returned database handle is shared by the module, rating, user, and
// moderation-event repositories; the client must be disconnected by the
// caller on shutdown.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog store connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("catalog store ping: %w", err)
	}

	return client, client.Database(database), nil
}
