package service

import (
	"context"
	"time"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/metrics"
	"cosmetics-store-api/internal/model"

	"golang.org/x/sync/errgroup"
)

// Upstream document names, used as slot names and metric labels.
const (
	DocumentCatalog = "catalog"
	DocumentNew     = "new"
	DocumentShop    = "shop"
)

// CatalogFetcher loads the upstream documents.
type CatalogFetcher interface {
	Cosmetics(ctx context.Context) (*model.CosmeticsResponse, error)
	NewCosmetics(ctx context.Context) (*model.NewCosmeticsResponse, error)
	Shop(ctx context.Context) (*model.ShopResponse, error)
}

// CatalogCacheConfig holds the per-document TTLs.
type CatalogCacheConfig struct {
	CatalogTTL time.Duration
	NewTTL     time.Duration
	ShopTTL    time.Duration
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// CatalogCache memoizes the three upstream documents independently.
type CatalogCache struct {
	catalog *cache.Slot[*model.CosmeticsResponse]
	newest  *cache.Slot[*model.NewCosmeticsResponse]
	shop    *cache.Slot[*model.ShopResponse]
}

// NewCatalogCache creates a catalog cache backed by fetcher.
func NewCatalogCache(fetcher CatalogFetcher, cfg CatalogCacheConfig) *CatalogCache {
	return &CatalogCache{
		catalog: cache.NewSlot(DocumentCatalog, cfg.CatalogTTL, recorded(DocumentCatalog, fetcher.Cosmetics), cfg.Now),
		newest:  cache.NewSlot(DocumentNew, cfg.NewTTL, recorded(DocumentNew, fetcher.NewCosmetics), cfg.Now),
		shop:    cache.NewSlot(DocumentShop, cfg.ShopTTL, recorded(DocumentShop, fetcher.Shop), cfg.Now),
	}
}

func recorded[T any](document string, fetch cache.FetchFunc[T]) cache.FetchFunc[T] {
	return func(ctx context.Context) (T, error) {
		v, err := fetch(ctx)
		metrics.RecordUpstreamFetch(document, err)
		return v, err
	}
}

// GetCatalog returns the full cosmetics catalog.
func (c *CatalogCache) GetCatalog(ctx context.Context) (*model.CosmeticsResponse, error) {
	return c.catalog.Get(ctx)
}

// GetNewItems returns the recently added cosmetics.
func (c *CatalogCache) GetNewItems(ctx context.Context) (*model.NewCosmeticsResponse, error) {
	return c.newest.Get(ctx)
}

// GetShop returns the current item shop.
func (c *CatalogCache) GetShop(ctx context.Context) (*model.ShopResponse, error) {
	return c.shop.Get(ctx)
}

// Warm loads every expired document in parallel. Fresh documents are left alone.
func (c *CatalogCache) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := c.catalog.Get(ctx); return err })
	g.Go(func() error { _, err := c.newest.Get(ctx); return err })
	g.Go(func() error { _, err := c.shop.Get(ctx); return err })

	if err := g.Wait(); err != nil {
		logger.Component("CatalogCache").WithError(err).Warn("Warm failed")
		return err
	}
	return nil
}

// Invalidate expires every document; the next read refetches.
func (c *CatalogCache) Invalidate() {
	c.catalog.Invalidate()
	c.newest.Invalidate()
	c.shop.Invalidate()
}

// Statuses reports the state of every slot.
func (c *CatalogCache) Statuses() []cache.SlotStatus {
	return []cache.SlotStatus{c.catalog.Status(), c.newest.Status(), c.shop.Status()}
}
