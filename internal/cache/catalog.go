package cache

import (
	"certportal/internal/metrics"
	"certportal/internal/models"
	"certportal/internal/storage"
	"context"
	"log/slog"
	"time"

	"github.com/go-jose/go-jose/v4/json"
)

const activeTypesKey = "document_types:active"

// Catalog serves the active document type reads of a StorageProvider from a cache. Every
// other method goes straight to the embedded provider.
type Catalog struct {
	storage.StorageProvider
	cache  CacheProvider
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalog wraps store. A nil cache disables caching.
func NewCatalog(store storage.StorageProvider, cache CacheProvider, ttl time.Duration, logger *slog.Logger) *Catalog {
	return &Catalog{
		StorageProvider: store,
		cache:           cache,
		ttl:             ttl,
		logger:          logger,
	}
}

// ListActiveDocumentTypes returns every active type in ascending code order.
func (c *Catalog) ListActiveDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	if c.cache == nil {
		return c.StorageProvider.ListActiveDocumentTypes(ctx)
	}

	if data, ok := c.cache.Get(ctx, activeTypesKey); ok {
		var types []models.DocumentType
		err := json.Unmarshal(data, &types)
		if err == nil {
			metrics.CatalogCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
			return types, nil
		}
		c.logger.Warn("discarding unreadable document type cache entry", "error", err)
		c.cache.Delete(ctx, activeTypesKey)
	}

	metrics.CatalogCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()

	types, err := c.StorageProvider.ListActiveDocumentTypes(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(types)
	if err != nil {
		c.logger.Error("failed to encode document types for cache", "error", err)
		return types, nil
	}
	c.cache.Set(ctx, activeTypesKey, data, c.ttl)
	c.logger.Debug("document type catalogue cached", "types", len(types), "ttl", c.ttl)

	return types, nil
}

// GetActiveDocumentType answers from the cached catalogue. The first entry with the code
// wins, which matches the lowest id since the list is ordered by code then id.
func (c *Catalog) GetActiveDocumentType(ctx context.Context, code string) (*models.DocumentType, error) {
	if c.cache == nil {
		return c.StorageProvider.GetActiveDocumentType(ctx, code)
	}

	types, err := c.ListActiveDocumentTypes(ctx)
	if err != nil {
		return nil, err
	}

	for i := range types {
		if types[i].Code == code {
			dt := types[i]
			return &dt, nil
		}
	}

	return nil, storage.DocumentTypeNotFoundError
}

// Invalidate drops the cached catalogue so the next read goes to the database.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.cache != nil {
		c.cache.Delete(ctx, activeTypesKey)
	}
}
