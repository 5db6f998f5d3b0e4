package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cosmetics-store-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeFetcher struct {
	catalog  *model.CosmeticsResponse
	newItems *model.NewCosmeticsResponse
	shop     *model.ShopResponse

	fail atomic.Bool

	catalogCalls atomic.Int32
	newCalls     atomic.Int32
	shopCalls    atomic.Int32
}

var errUpstream = errors.New("upstream down")

func (f *fakeFetcher) Cosmetics(context.Context) (*model.CosmeticsResponse, error) {
	f.catalogCalls.Add(1)
	if f.fail.Load() {
		return nil, errUpstream
	}
	return f.catalog, nil
}

func (f *fakeFetcher) NewCosmetics(context.Context) (*model.NewCosmeticsResponse, error) {
	f.newCalls.Add(1)
	if f.fail.Load() {
		return nil, errUpstream
	}
	return f.newItems, nil
}

func (f *fakeFetcher) Shop(context.Context) (*model.ShopResponse, error) {
	f.shopCalls.Add(1)
	if f.fail.Load() {
		return nil, errUpstream
	}
	return f.shop, nil
}

type fakeOwners struct {
	ids   map[int64][]string
	calls atomic.Int32
}

func (o *fakeOwners) OwnedIDs(_ context.Context, userID int64) ([]string, error) {
	o.calls.Add(1)
	return o.ids[userID], nil
}

func newScenarioFetcher() *fakeFetcher {
	catalog, newItems, shop := scenarioCatalog()
	return &fakeFetcher{catalog: catalog, newItems: newItems, shop: shop}
}

func newTestCatalogCache(f *fakeFetcher, clock *testClock) *CatalogCache {
	return NewCatalogCache(f, CatalogCacheConfig{
		CatalogTTL: 30 * time.Minute,
		NewTTL:     10 * time.Minute,
		ShopTTL:    5 * time.Minute,
		Now:        clock.Now,
	})
}

func newTestCatalogService(f *fakeFetcher, owners OwnershipReader) (*CatalogService, *testClock) {
	clock := &testClock{now: baseTime}
	svc := NewCatalogService(newTestCatalogCache(f, clock), owners, NewCatalogEnricher(NewPriceResolver()), NewSearchEngine())
	return svc, clock
}

func TestCatalogCache_TTLPerDocument(t *testing.T) {
	f := newScenarioFetcher()
	clock := &testClock{now: baseTime}
	c := newTestCatalogCache(f, clock)
	ctx := context.Background()

	require.NoError(t, c.Warm(ctx))
	require.NoError(t, c.Warm(ctx))
	assert.Equal(t, int32(1), f.catalogCalls.Load())
	assert.Equal(t, int32(1), f.newCalls.Load())
	assert.Equal(t, int32(1), f.shopCalls.Load())

	clock.Advance(6 * time.Minute)
	_, err := c.GetShop(ctx)
	require.NoError(t, err)
	_, err = c.GetNewItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.shopCalls.Load())
	assert.Equal(t, int32(1), f.newCalls.Load())

	clock.Advance(25 * time.Minute)
	_, err = c.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.catalogCalls.Load())
}

func TestCatalogCache_FailureKeepsStaleValue(t *testing.T) {
	f := newScenarioFetcher()
	clock := &testClock{now: baseTime}
	c := newTestCatalogCache(f, clock)
	ctx := context.Background()

	first, err := c.GetCatalog(ctx)
	require.NoError(t, err)

	f.fail.Store(true)
	clock.Advance(time.Hour)

	_, err = c.GetCatalog(ctx)
	assert.ErrorIs(t, err, errUpstream)

	stale, ok := c.catalog.Stale()
	require.True(t, ok)
	assert.Same(t, first, stale)

	for _, st := range c.Statuses() {
		if st.Name == DocumentCatalog {
			assert.True(t, st.Loaded)
			assert.True(t, st.Expired)
		}
	}
}

func TestCatalogCache_Invalidate(t *testing.T) {
	f := newScenarioFetcher()
	c := newTestCatalogCache(f, &testClock{now: baseTime})
	ctx := context.Background()

	require.NoError(t, c.Warm(ctx))
	c.Invalidate()
	require.NoError(t, c.Warm(ctx))
	assert.Equal(t, int32(2), f.catalogCalls.Load())
}

func TestCatalogService_ListTotalIsCatalogLength(t *testing.T) {
	svc, _ := newTestCatalogService(newScenarioFetcher(), nil)

	res, err := svc.List(context.Background(), nil, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, []string{"C", "B"}, ids(res.Cosmetics))

	res, err = svc.List(context.Background(), nil, SortNewest, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(res.Cosmetics))

	res, err = svc.List(context.Background(), nil, SortNewest, math.MaxInt64, 100)
	require.NoError(t, err)
	assert.Empty(t, res.Cosmetics)
	assert.Equal(t, 3, res.TotalCount)
}

func TestCatalogService_FastPathMatchesFullPath(t *testing.T) {
	items := make([]model.Cosmetic, 0, 25)
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("Item %02d", (i*7)%25)
		items = append(items, cosmetic(fmt.Sprintf("ID_%02d", i), name, "outfit", "rare", i%4))
	}
	f := &fakeFetcher{
		catalog:  catalogDoc(items...),
		newItems: newDoc("ID_03", "ID_07"),
		shop:     shopDoc(shopEntry(800, 1000, "ID_01"), shopEntry(1500, 1500, "ID_02", "ID_04", "ID_05")),
	}
	owners := &fakeOwners{ids: map[int64][]string{1: {"ID_02", "ID_09"}}}
	svc, _ := newTestCatalogService(f, owners)
	ctx := context.Background()

	snap, err := svc.load(ctx, ptr(int64(1)))
	require.NoError(t, err)
	full := svc.enricher.Enrich(snap.catalog, snap.newItems, snap.shop, snap.owned)

	sorts := []string{"", SortNewest, SortOldest, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, "bogus"}
	for _, sortBy := range sorts {
		for _, pageSize := range []int{10, 20} {
			for page := 1; page <= 4; page++ {
				fast, err := svc.List(ctx, ptr(int64(1)), sortBy, page, pageSize)
				require.NoError(t, err)

				want := svc.search.Search(full, model.SearchFilter{SortBy: sortBy}, page, pageSize)
				assert.Equal(t, want.Cosmetics, fast.Cosmetics, "sort=%q page=%d size=%d", sortBy, page, pageSize)
				assert.Equal(t, len(items), fast.TotalCount)
			}
		}
	}
}

func TestCatalogService_SearchUsesFilter(t *testing.T) {
	svc, _ := newTestCatalogService(newScenarioFetcher(), nil)

	res, err := svc.Search(context.Background(), nil, model.SearchFilter{OnlyBundle: true, SortBy: SortNameAsc}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, []string{"B", "C"}, ids(res.Cosmetics))
}

func TestCatalogService_OwnershipOnlyForIdentifiedCaller(t *testing.T) {
	owners := &fakeOwners{ids: map[int64][]string{7: {"A"}}}
	svc, _ := newTestCatalogService(newScenarioFetcher(), owners)
	ctx := context.Background()

	res, err := svc.Search(ctx, nil, model.SearchFilter{OnlyOwned: true}, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
	assert.Equal(t, int32(0), owners.calls.Load())

	res, err = svc.Search(ctx, ptr(int64(7)), model.SearchFilter{OnlyOwned: true}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(res.Cosmetics))
	assert.Equal(t, int32(1), owners.calls.Load())
}

func TestCatalogService_ServesStaleOnUpstreamFailure(t *testing.T) {
	f := newScenarioFetcher()
	svc, clock := newTestCatalogService(f, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, nil, "", 1, 20)
	require.NoError(t, err)

	f.fail.Store(true)
	clock.Advance(time.Hour)

	res, err := svc.List(ctx, nil, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)

	shop, err := svc.Shop(ctx)
	require.NoError(t, err)
	assert.Len(t, shop.Data.Entries, 1)
}

func TestCatalogService_UpstreamUnavailableWithoutCache(t *testing.T) {
	f := newScenarioFetcher()
	f.fail.Store(true)
	svc, _ := newTestCatalogService(f, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, nil, "", 1, 20)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = svc.FilterOptions(ctx, nil, model.SearchFilter{})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = svc.NewItems(ctx)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCatalogService_FilterOptions(t *testing.T) {
	svc, _ := newTestCatalogService(newScenarioFetcher(), nil)

	opts, err := svc.FilterOptions(context.Background(), nil, model.SearchFilter{Type: "emote", OnlyNew: true})
	require.NoError(t, err)

	require.Len(t, opts.Types, 2)
	assert.Equal(t, model.FilterOption{Value: "emote", Label: "Label emote", Count: 1}, opts.Types[0])
	assert.Equal(t, model.FilterOption{Value: "outfit", Label: "Label outfit", Count: 0}, opts.Types[1])
}
