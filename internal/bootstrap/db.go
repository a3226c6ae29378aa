package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yash200611/launchmate/config"
	"github.com/yash200611/launchmate/internal/logging"
	"github.com/yash200611/launchmate/internal/storage/mongodb"
)

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

func (o *DBOptions) defaults() {
	if o.ConnectTO == 0 {
		o.ConnectTO = 5 * time.Second
	}
	if o.PingTO == 0 {
		o.PingTO = 2 * time.Second
	}
}

// OpenStore builds the Mongo store and connects it; the store creates its
// indexes on connect. A server that is unreachable at startup is logged and
// left to the store's reconnect loop, so the API comes up and reports a
// degraded health check until it recovers.
func OpenStore(ctx context.Context, cfg config.MongoConfig, opt DBOptions) *mongodb.Store {
	opt.defaults()
	store := mongodb.New(cfg)

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	if _, err := store.Client(cctx); err != nil {
		logging.Logger.Warn().Err(err).Msg("mongo not ready at startup; indexes follow the reconnect")
		return store
	}
	if !store.IndexesReady() {
		if err := store.EnsureIndexes(cctx); err != nil {
			logging.Logger.Warn().Err(err).Msg("mongo indexes not created")
		}
	}
	return store
}

// OpenRedis connects and pings redis. It returns (nil, nil) when no address
// is configured.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, opt DBOptions) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	opt.defaults()

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: opt.ConnectTO,
	})

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
