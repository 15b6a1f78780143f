package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"reout/internal/infra"
	"reout/pkg/config"
	"reout/pkg/logger"
	mem "reout/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

const sweepInterval = 10 * time.Minute

func provideSessionStore(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) (mem.SessionStore, error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		client, err := infra.OpenRedis(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(client.Close))
		log.Info("Using redis session store", "addr", cfg.RedisAddr)
		return mem.NewRedisSessionStore(client, cfg.SessionTTL), nil
	}

	store := mem.NewMemorySessionStore(cfg.SessionTTL)
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							log.Debug("expired sessions removed", "count", n)
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return store, nil
}
