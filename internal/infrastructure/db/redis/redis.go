package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup verification ping.
const connectTimeout = 5 * time.Second

// Connect dials the Redis instance backing the identity cache and verifies
// connectivity with a ping. The client is named so catalog connections are
// identifiable in CLIENT LIST on a shared instance.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		DB:         db,
		ClientName: "module-catalog",
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("identity cache ping: %w", err)
	}

	return client, nil
}
