package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/catalog"
)

// InMemoryDocumentTypeCache decorates a DocumentTypeRepository with a
// process-local cache. Suitable for single-instance deployments and tests;
// entries expire after the TTL so external catalog edits eventually surface.
type InMemoryDocumentTypeCache struct {
	inner catalog.DocumentTypeRepository
	ttl   time.Duration

	mu       sync.RWMutex
	bySymbol map[string]cacheEntry
	byID     map[uuid.UUID]cacheEntry
}

type cacheEntry struct {
	value     catalog.DocumentType
	expiresAt time.Time
}

// NewInMemoryDocumentTypeCache creates a process-local document type cache.
func NewInMemoryDocumentTypeCache(inner catalog.DocumentTypeRepository, ttl time.Duration) *InMemoryDocumentTypeCache {
	if ttl <= 0 {
		ttl = DefaultDocumentTypeTTL
	}
	return &InMemoryDocumentTypeCache{
		inner:    inner,
		ttl:      ttl,
		bySymbol: make(map[string]cacheEntry),
		byID:     make(map[uuid.UUID]cacheEntry),
	}
}

// FindByID retrieves a document type, consulting the cache first.
func (c *InMemoryDocumentTypeCache) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DocumentType, error) {
	c.mu.RLock()
	entry, ok := c.byID[id]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		t := entry.value
		return &t, nil
	}

	t, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(t)
	return t, nil
}

// FindBySymbol retrieves a document type by symbol, consulting the cache first.
func (c *InMemoryDocumentTypeCache) FindBySymbol(ctx context.Context, symbol string) (*catalog.DocumentType, error) {
	c.mu.RLock()
	entry, ok := c.bySymbol[symbol]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		t := entry.value
		return &t, nil
	}

	t, err := c.inner.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.store(t)
	return t, nil
}

// FindAll lists the catalog straight from the repository.
func (c *InMemoryDocumentTypeCache) FindAll(ctx context.Context) ([]catalog.DocumentType, error) {
	return c.inner.FindAll(ctx)
}

// Save writes through to the repository and invalidates the cached entry.
func (c *InMemoryDocumentTypeCache) Save(ctx context.Context, t *catalog.DocumentType) error {
	if err := c.inner.Save(ctx, t); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.bySymbol, t.Symbol)
	delete(c.byID, t.ID)
	c.mu.Unlock()
	return nil
}

func (c *InMemoryDocumentTypeCache) store(t *catalog.DocumentType) {
	entry := cacheEntry{value: *t, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Lock()
	c.bySymbol[t.Symbol] = entry
	c.byID[t.ID] = entry
	c.mu.Unlock()
}

// Ensure InMemoryDocumentTypeCache implements catalog.DocumentTypeRepository
var _ catalog.DocumentTypeRepository = (*InMemoryDocumentTypeCache)(nil)
