package service

import (
	"cosmetics-store-api/internal/model"
)

// OwnedSet is the set of cosmetic ids a user owns. A nil set means an
// anonymous caller and marks nothing as owned.
type OwnedSet map[string]struct{}

// NewOwnedSet builds a set from ids.
func NewOwnedSet(ids []string) OwnedSet {
	set := make(OwnedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is owned.
func (s OwnedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// CatalogIndex holds the lookups derived once per new-items and shop snapshot.
type CatalogIndex struct {
	// Shop maps every listed cosmetic id to the first entry listing it.
	Shop map[string]*model.ShopEntry
	// Bundle maps ids whose first entry groups more than one cosmetic.
	Bundle map[string]*model.ShopEntry
	NewIDs map[string]struct{}
	InShop map[string]struct{}
}

// BuildCatalogIndex scans the new-items and shop documents once.
// Either document may be nil.
func BuildCatalogIndex(newItems *model.NewCosmeticsResponse, shop *model.ShopResponse) *CatalogIndex {
	idx := &CatalogIndex{
		Shop:   make(map[string]*model.ShopEntry),
		Bundle: make(map[string]*model.ShopEntry),
		NewIDs: make(map[string]struct{}),
		InShop: make(map[string]struct{}),
	}

	if newItems != nil {
		for _, c := range newItems.Data.Items.BR {
			idx.NewIDs[c.ID] = struct{}{}
		}
	}

	if shop == nil {
		return idx
	}

	for i := range shop.Data.Entries {
		entry := &shop.Data.Entries[i]
		for _, item := range entry.BRItems {
			idx.InShop[item.ID] = struct{}{}

			if _, seen := idx.Shop[item.ID]; seen {
				continue
			}
			idx.Shop[item.ID] = entry
			if entry.IsBundle() {
				idx.Bundle[item.ID] = entry
			}
		}
	}

	return idx
}

// CatalogEnricher joins the catalog with shop, novelty and ownership data.
type CatalogEnricher struct {
	prices *PriceResolver
}

// NewCatalogEnricher creates an enricher.
func NewCatalogEnricher(prices *PriceResolver) *CatalogEnricher {
	return &CatalogEnricher{prices: prices}
}

// Enrich returns one enriched cosmetic per catalog cosmetic, in catalog order.
func (e *CatalogEnricher) Enrich(
	catalog *model.CosmeticsResponse,
	newItems *model.NewCosmeticsResponse,
	shop *model.ShopResponse,
	owned OwnedSet,
) []model.EnrichedCosmetic {
	if catalog == nil {
		return []model.EnrichedCosmetic{}
	}

	idx := BuildCatalogIndex(newItems, shop)
	out := make([]model.EnrichedCosmetic, len(catalog.Data.BR))
	for i := range catalog.Data.BR {
		out[i] = e.EnrichOne(&catalog.Data.BR[i], idx, owned)
	}
	return out
}

// EnrichOne derives the enriched view of a single cosmetic.
func (e *CatalogEnricher) EnrichOne(c *model.Cosmetic, idx *CatalogIndex, owned OwnedSet) model.EnrichedCosmetic {
	price := e.Price(c.ID, idx)
	entry, listed := idx.Shop[c.ID]
	_, isNew := idx.NewIDs[c.ID]
	_, inShop := idx.InShop[c.ID]

	out := model.EnrichedCosmetic{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Type:         c.Type,
		Rarity:       c.Rarity,
		Images:       c.Images,
		Added:        c.Added,
		IsNew:        isNew,
		IsInShop:     inShop,
		IsOwned:      owned.Has(c.ID),
		IsOnSale:     listed && entry.FinalPrice < entry.RegularPrice,
		Price:        intPtr(price.Final),
		RegularPrice: intPtr(price.Regular),
	}

	if bundle, ok := idx.Bundle[c.ID]; ok {
		out.IsBundle = true
		out.BundleItems = bundleItems(bundle)
	}

	return out
}

// Price is the price a cosmetic is sold at. Bundle members carry their share
// of the bundle: final and regular are each divided by the member count.
func (e *CatalogEnricher) Price(id string, idx *CatalogIndex) Price {
	price := e.prices.Resolve(id, idx.Shop)
	if entry, ok := idx.Bundle[id]; ok {
		n := len(entry.BRItems)
		price.Final = entry.FinalPrice / n
		price.Regular = entry.RegularPrice / n
	}
	return price
}

func bundleItems(entry *model.ShopEntry) []model.BundleItem {
	perItem := entry.FinalPrice / len(entry.BRItems)
	items := make([]model.BundleItem, len(entry.BRItems))
	for i, item := range entry.BRItems {
		items[i] = model.BundleItem{ID: item.ID, Name: item.Name, Price: perItem}
	}
	return items
}

func intPtr(v int) *int {
	return &v
}
