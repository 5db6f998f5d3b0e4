package service

import (
	"context"
	"errors"
	"fmt"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/metrics"
	"cosmetics-store-api/internal/model"

	"golang.org/x/sync/errgroup"
)

// ErrUpstreamUnavailable is returned when a document can be neither fetched
// nor served from a previous fetch.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// OwnershipReader lists the cosmetics a user owns.
type OwnershipReader interface {
	OwnedIDs(ctx context.Context, userID int64) ([]string, error)
}

// CatalogService serves the enriched catalog.
type CatalogService struct {
	cache    *CatalogCache
	owners   OwnershipReader
	enricher *CatalogEnricher
	search   *SearchEngine
}

// NewCatalogService creates a catalog service. owners may be nil, in which
// case nothing is ever marked owned.
func NewCatalogService(c *CatalogCache, owners OwnershipReader, enricher *CatalogEnricher, search *SearchEngine) *CatalogService {
	return &CatalogService{cache: c, owners: owners, enricher: enricher, search: search}
}

type snapshot struct {
	catalog  *model.CosmeticsResponse
	newItems *model.NewCosmeticsResponse
	shop     *model.ShopResponse
	owned    OwnedSet
}

// List returns one page of the whole catalog sorted by sortBy.
func (s *CatalogService) List(ctx context.Context, userID *int64, sortBy string, page, pageSize int) (model.SearchResult, error) {
	return s.Search(ctx, userID, model.SearchFilter{SortBy: sortBy}, page, pageSize)
}

// Search returns one page of the cosmetics matching f.
func (s *CatalogService) Search(ctx context.Context, userID *int64, f model.SearchFilter, page, pageSize int) (model.SearchResult, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return model.SearchResult{}, err
	}

	if !f.IsActive() {
		return s.sortedPage(snap, f.SortBy, page, pageSize), nil
	}

	list := s.enricher.Enrich(snap.catalog, snap.newItems, snap.shop, snap.owned)
	return s.search.Search(list, f, page, pageSize), nil
}

// sortedPage orders the raw catalog and enriches only the requested page.
func (s *CatalogService) sortedPage(snap *snapshot, sortBy string, page, pageSize int) model.SearchResult {
	idx := BuildCatalogIndex(snap.newItems, snap.shop)
	items := snap.catalog.Data.BR

	order := sortOrder(len(items), func(i int) sortKey {
		price := s.enricher.Price(items[i].ID, idx).Final
		return sortKey{name: items[i].Name, added: items[i].Added, price: &price}
	}, sortBy)

	pageOrder := Paginate(order, page, pageSize)
	out := make([]model.EnrichedCosmetic, len(pageOrder))
	for i, j := range pageOrder {
		out[i] = s.enricher.EnrichOne(&items[j], idx, snap.owned)
	}

	return model.SearchResult{
		Cosmetics:  out,
		TotalCount: len(items),
		Page:       page,
		PageSize:   pageSize,
	}
}

// FilterOptions lists the selectable types and rarities with counts under f.
func (s *CatalogService) FilterOptions(ctx context.Context, userID *int64, f model.SearchFilter) (model.FilterOptions, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return model.FilterOptions{}, err
	}

	list := s.enricher.Enrich(snap.catalog, snap.newItems, snap.shop, snap.owned)
	return s.search.FilterOptions(list, f), nil
}

// NewItems returns the raw new-items document.
func (s *CatalogService) NewItems(ctx context.Context) (*model.NewCosmeticsResponse, error) {
	return orStale(DocumentNew, s.cache.newest)(ctx)
}

// Shop returns the raw shop document.
func (s *CatalogService) Shop(ctx context.Context) (*model.ShopResponse, error) {
	return orStale(DocumentShop, s.cache.shop)(ctx)
}

func (s *CatalogService) load(ctx context.Context, userID *int64) (*snapshot, error) {
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.catalog, err = orStale(DocumentCatalog, s.cache.catalog)(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.newItems, err = orStale(DocumentNew, s.cache.newest)(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.shop, err = orStale(DocumentShop, s.cache.shop)(gctx)
		return err
	})
	if userID != nil && s.owners != nil {
		g.Go(func() error {
			ids, err := s.owners.OwnedIDs(gctx, *userID)
			if err != nil {
				return err
			}
			snap.owned = NewOwnedSet(ids)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snap.catalog == nil {
		snap.catalog = &model.CosmeticsResponse{}
	}
	return snap, nil
}

// orStale reads slot, serving its last value when the fetch fails.
func orStale[T any](document string, slot *cache.Slot[T]) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		v, err := slot.Get(ctx)
		if err == nil {
			return v, nil
		}

		if stale, ok := slot.Stale(); ok {
			logger.Component("CatalogService").WithError(err).WithField("document", document).Warn("Serving stale document")
			metrics.RecordStaleServed(document)
			return stale, nil
		}

		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, document, err)
	}
}
