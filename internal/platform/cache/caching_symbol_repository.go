// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pricehistory/internal/feature/symbollist/domain/entity"
	"pricehistory/internal/feature/symbollist/usecase"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultNamespace = "symbols"
)

// CachingSymbolRepository decorates a SymbolRepository with a Redis
// read-through cache. Only the catalogue is cached; price history is always
// fetched live.
type CachingSymbolRepository struct {
	inner     usecase.SymbolRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SymbolRepository = (*CachingSymbolRepository)(nil)

// NewCachingSymbolRepository wraps inner. A nil rdb disables caching.
// If ttl is not positive it defaults to 10 minutes. If namespace is empty, it uses "symbols".
func NewCachingSymbolRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SymbolRepository, namespace string) *CachingSymbolRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingSymbolRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// ListActive returns active symbols, checking the cache first.
func (c *CachingSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	return readThrough(ctx, c, c.key("active"), c.inner.ListActive)
}

// ListActiveCodes returns active symbol codes, checking the cache first.
func (c *CachingSymbolRepository) ListActiveCodes(ctx context.Context) ([]string, error) {
	return readThrough(ctx, c, c.key("codes"), c.inner.ListActiveCodes)
}

// Create registers the symbol and drops both cached listings.
func (c *CachingSymbolRepository) Create(ctx context.Context, s *entity.Symbol) error {
	if err := c.inner.Create(ctx, s); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

// Invalidate removes the cached listings. Failures are logged, not returned.
func (c *CachingSymbolRepository) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key("active"), c.key("codes")).Err(); err != nil {
		slog.Warn("symbol cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

func (c *CachingSymbolRepository) key(kind string) string {
	return c.namespace + ":" + kind
}

// readThrough returns the cached value for key or loads and stores it.
// Cache errors never fail the call.
func readThrough[T any](ctx context.Context, c *CachingSymbolRepository, key string, load func(context.Context) (T, error)) (T, error) {
	if c.rdb == nil {
		return load(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
