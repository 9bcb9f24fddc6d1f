package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

// Options describes how to reach Redis. An empty Addr disables it.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and pings it. It returns (nil, nil) when no address is
// configured, so callers can run with in-memory sessions only.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	log := logger.Component("redis")
	if opts.Addr == "" {
		log.Info().Msg("no REDIS_URL configured, sessions stay in memory")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", opts.Addr)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected")
	return client, nil
}
