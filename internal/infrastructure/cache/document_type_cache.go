package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
)

// DefaultDocumentTypeTTL is how long cached catalog entries stay valid.
// Document types are reference data, so a generous TTL is safe.
const DefaultDocumentTypeTTL = 10 * time.Minute

// RedisDocumentTypeCache decorates a DocumentTypeRepository with a Redis
// read-through cache. The document type catalog is consulted on every
// lifecycle operation, so keeping it hot saves a round trip per request.
// Cache failures degrade to the underlying repository, never to an error.
type RedisDocumentTypeCache struct {
	inner  catalog.DocumentTypeRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDocumentTypeCache creates a Redis-backed document type cache.
func NewRedisDocumentTypeCache(inner catalog.DocumentTypeRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDocumentTypeCache {
	if ttl <= 0 {
		ttl = DefaultDocumentTypeTTL
	}
	return &RedisDocumentTypeCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedDocumentType is the Redis serialization of a catalog entry. The
// derived capability fields are not stored; they are resolved after decode.
type cachedDocumentType struct {
	ID                   uuid.UUID `json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Group                string    `json:"group"`
	Symbol               string    `json:"symbol"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	IsFixing             bool      `json:"is_fixing"`
	RequiresVerification bool      `json:"requires_verification"`
}

func symbolKey(symbol string) string {
	return "wms:doctype:symbol:" + symbol
}

func idKey(id uuid.UUID) string {
	return "wms:doctype:id:" + id.String()
}

func encodeDocumentType(t *catalog.DocumentType) ([]byte, error) {
	return json.Marshal(cachedDocumentType{
		ID:                   t.ID,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
		Group:                t.Group,
		Symbol:               t.Symbol,
		Name:                 t.Name,
		Description:          t.Description,
		IsFixing:             t.IsFixing,
		RequiresVerification: t.RequiresVerification,
	})
}

func decodeDocumentType(data []byte) (*catalog.DocumentType, error) {
	var c cachedDocumentType
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	t := &catalog.DocumentType{
		Group:                c.Group,
		Symbol:               c.Symbol,
		Name:                 c.Name,
		Description:          c.Description,
		IsFixing:             c.IsFixing,
		RequiresVerification: c.RequiresVerification,
	}
	t.ID = c.ID
	t.CreatedAt = c.CreatedAt
	t.UpdatedAt = c.UpdatedAt
	t.ResolveCapabilities()
	return t, nil
}

// FindByID retrieves a document type, consulting the cache first.
func (c *RedisDocumentTypeCache) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DocumentType, error) {
	if data, err := c.client.Get(ctx, idKey(id)).Bytes(); err == nil {
		if t, decodeErr := decodeDocumentType(data); decodeErr == nil {
			return t, nil
		}
	}
	t, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, t)
	return t, nil
}

// FindBySymbol retrieves a document type by symbol, consulting the cache first.
func (c *RedisDocumentTypeCache) FindBySymbol(ctx context.Context, symbol string) (*catalog.DocumentType, error) {
	if data, err := c.client.Get(ctx, symbolKey(symbol)).Bytes(); err == nil {
		if t, decodeErr := decodeDocumentType(data); decodeErr == nil {
			return t, nil
		}
	}
	t, err := c.inner.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.store(ctx, t)
	return t, nil
}

// FindAll lists the catalog. List queries always hit the repository; only
// point lookups are cached.
func (c *RedisDocumentTypeCache) FindAll(ctx context.Context) ([]catalog.DocumentType, error) {
	return c.inner.FindAll(ctx)
}

// Save writes through to the repository and invalidates the cached entry.
func (c *RedisDocumentTypeCache) Save(ctx context.Context, t *catalog.DocumentType) error {
	if err := c.inner.Save(ctx, t); err != nil {
		return err
	}
	if err := c.client.Del(ctx, symbolKey(t.Symbol), idKey(t.ID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate document type cache",
			zap.String("symbol", t.Symbol), zap.Error(err))
	}
	return nil
}

func (c *RedisDocumentTypeCache) store(ctx context.Context, t *catalog.DocumentType) {
	data, err := encodeDocumentType(t)
	if err != nil {
		return
	}
	pipe := c.client.Pipeline()
	pipe.Set(ctx, symbolKey(t.Symbol), data, c.ttl)
	pipe.Set(ctx, idKey(t.ID), data, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Debug("failed to cache document type",
			zap.String("symbol", t.Symbol), zap.Error(err))
	}
}

// Ensure RedisDocumentTypeCache implements catalog.DocumentTypeRepository
var _ catalog.DocumentTypeRepository = (*RedisDocumentTypeCache)(nil)

// redisAddr formats a host/port pair for the Redis client.
func redisAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
