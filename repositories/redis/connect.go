package redis

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "ledger-recon/errors"

	// External Packages
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Connect connects to the redis db and returns the client.
func Connect(ctx context.Context, uri, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.E(errors.IO, "cannot reach redis at "+uri, err)
	}
	return rdb, nil
}
