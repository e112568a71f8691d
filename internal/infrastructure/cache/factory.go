package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/infrastructure/config"
)

// NewDocumentTypeCache wraps the given repository in a cache picked from the
// Redis configuration: Redis when enabled and reachable, an in-process cache
// otherwise. The returned close function releases the Redis client, if any.
func NewDocumentTypeCache(cfg config.RedisConfig, inner catalog.DocumentTypeRepository, logger *zap.Logger) (catalog.DocumentTypeRepository, func() error) {
	if !cfg.Enabled {
		return NewInMemoryDocumentTypeCache(inner, DefaultDocumentTypeTTL), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory document type cache",
			zap.String("addr", redisAddr(cfg.Host, cfg.Port)), zap.Error(err))
		_ = client.Close()
		return NewInMemoryDocumentTypeCache(inner, DefaultDocumentTypeTTL), func() error { return nil }
	}

	logger.Info("document type cache backed by redis",
		zap.String("addr", redisAddr(cfg.Host, cfg.Port)))
	return NewRedisDocumentTypeCache(inner, client, DefaultDocumentTypeTTL, logger), client.Close
}
