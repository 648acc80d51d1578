package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Makepad-fr/travelgrid/internal/backend"
	"github.com/Makepad-fr/travelgrid/internal/backend/local"
	"github.com/Makepad-fr/travelgrid/internal/backend/remote"
	"github.com/Makepad-fr/travelgrid/internal/config"
	"github.com/Makepad-fr/travelgrid/internal/store"
	"github.com/Makepad-fr/travelgrid/internal/store/badgerstore"
	"github.com/Makepad-fr/travelgrid/internal/store/jsonstore"
	"github.com/Makepad-fr/travelgrid/internal/store/redisstore"
)

// Open builds a Service from cfg: the remote backend when a remote URL is
// configured, otherwise the local backend over the configured storage driver.
// The choice holds for the life of the Service.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewService(b, log), nil
}

func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (backend.Backend, error) {
	if cfg.UsesRemote() {
		log.Info("using remote store", "url", remote.CollectionURL(cfg.Remote.URL))
		return remote.New(cfg.Remote.URL, remote.Options{
			Timeout:        time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
			RateLimitRPS:   cfg.Remote.RateLimitRPS,
			RateLimitBurst: cfg.Remote.RateLimitBurst,
			Logger:         log,
		}), nil
	}

	kv, err := openKV(ctx, cfg.Local)
	if err != nil {
		return nil, err
	}
	log.Info("using local store", "driver", cfg.Local.Driver, "namespace", cfg.Local.Namespace)
	return local.New(kv, cfg.Local.Namespace, log), nil
}

func openKV(ctx context.Context, c config.ConfigLocal) (store.KV, error) {
	switch c.Driver {
	case "", "file":
		s, err := jsonstore.Open(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	case "badger":
		s, err := badgerstore.Open(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := redisstore.Open(ctx, c.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown local driver %q", c.Driver)
}
