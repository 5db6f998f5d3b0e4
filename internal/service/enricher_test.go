package service

import (
	"testing"

	"cosmetics-store-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich_BundleScenario(t *testing.T) {
	catalog, newItems, shop := scenarioCatalog()
	e := NewCatalogEnricher(NewPriceResolver())

	out := e.Enrich(catalog, newItems, shop, nil)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"A", "B", "C"}, ids(out))

	a, b, c := out[0], out[1], out[2]

	assert.False(t, a.IsBundle)
	assert.False(t, a.IsInShop)
	assert.False(t, a.IsOnSale)
	assert.Equal(t, GeneratedPrice("A"), *a.Price)
	assert.Equal(t, *a.Price, *a.RegularPrice)
	assert.Nil(t, a.BundleItems)

	for _, m := range []model.EnrichedCosmetic{b, c} {
		assert.True(t, m.IsBundle, m.ID)
		assert.True(t, m.IsInShop, m.ID)
		assert.True(t, m.IsOnSale, m.ID)
		assert.Equal(t, 50, *m.Price, m.ID)
		assert.Equal(t, 75, *m.RegularPrice, m.ID)
		assert.Equal(t, []model.BundleItem{
			{ID: "B", Name: "name-B", Price: 50},
			{ID: "C", Name: "name-C", Price: 50},
		}, m.BundleItems)
	}

	assert.False(t, a.IsNew)
	assert.False(t, b.IsNew)
	assert.True(t, c.IsNew)
}

func TestEnrich_Ownership(t *testing.T) {
	catalog, newItems, shop := scenarioCatalog()
	e := NewCatalogEnricher(NewPriceResolver())

	anonymous := e.Enrich(catalog, newItems, shop, nil)
	for _, c := range anonymous {
		assert.False(t, c.IsOwned)
	}

	owned := e.Enrich(catalog, newItems, shop, NewOwnedSet([]string{"B"}))
	assert.False(t, owned[0].IsOwned)
	assert.True(t, owned[1].IsOwned)
	assert.False(t, owned[2].IsOwned)
}

func TestEnrich_SingleListingUsesShopPriceVerbatim(t *testing.T) {
	catalog := catalogDoc(cosmetic("X", "Xray", "outfit", "rare", 0))
	shop := shopDoc(shopEntry(500, 500, "X"))

	out := NewCatalogEnricher(NewPriceResolver()).Enrich(catalog, nil, shop, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 500, *out[0].Price)
	assert.Equal(t, 500, *out[0].RegularPrice)
	assert.True(t, out[0].IsInShop)
	assert.False(t, out[0].IsOnSale)
	assert.False(t, out[0].IsBundle)
}

func TestEnrich_FirstSeenEntryWins(t *testing.T) {
	catalog := catalogDoc(cosmetic("X", "Xray", "outfit", "rare", 0))
	shop := shopDoc(
		shopEntry(300, 400, "X"),
		shopEntry(90, 90, "X", "Y", "Z"),
	)

	out := NewCatalogEnricher(NewPriceResolver()).Enrich(catalog, nil, shop, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 300, *out[0].Price)
	assert.Equal(t, 400, *out[0].RegularPrice)
	assert.True(t, out[0].IsOnSale)
	assert.False(t, out[0].IsBundle)
}

func TestEnrich_EmptyEntryAndRoundingLoss(t *testing.T) {
	catalog := catalogDoc(
		cosmetic("P", "P", "outfit", "rare", 0),
		cosmetic("Q", "Q", "outfit", "rare", 0),
		cosmetic("R", "R", "outfit", "rare", 0),
	)
	shop := shopDoc(
		model.ShopEntry{FinalPrice: 999, RegularPrice: 999},
		shopEntry(100, 100, "P", "Q", "R"),
	)

	out := NewCatalogEnricher(NewPriceResolver()).Enrich(catalog, nil, shop, nil)
	sum := 0
	for _, c := range out {
		assert.Equal(t, 33, *c.Price)
		sum += *c.Price
	}
	assert.Equal(t, 99, sum)
}

func TestEnrich_NilDocuments(t *testing.T) {
	e := NewCatalogEnricher(NewPriceResolver())

	assert.Empty(t, e.Enrich(nil, nil, nil, nil))

	out := e.Enrich(catalogDoc(cosmetic("A", "Alpha", "outfit", "rare", 0)), nil, nil, nil)
	require.Len(t, out, 1)
	assert.False(t, out[0].IsNew)
	assert.False(t, out[0].IsInShop)
	assert.Equal(t, GeneratedPrice("A"), *out[0].Price)
}
