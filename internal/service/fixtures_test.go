package service

import (
	"time"

	"cosmetics-store-api/internal/model"
)

var baseTime = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func cosmetic(id, name, typ, rarity string, addedDaysAgo int) model.Cosmetic {
	return model.Cosmetic{
		ID:     id,
		Name:   name,
		Type:   model.Descriptor{Value: typ, DisplayValue: displayName(typ)},
		Rarity: model.Descriptor{Value: rarity, DisplayValue: displayName(rarity)},
		Added:  baseTime.AddDate(0, 0, -addedDaysAgo),
	}
}

func displayName(v string) string {
	if v == "" {
		return ""
	}
	return "Label " + v
}

func catalogDoc(items ...model.Cosmetic) *model.CosmeticsResponse {
	return &model.CosmeticsResponse{Status: 200, Data: model.CosmeticsData{BR: items}}
}

func newDoc(ids ...string) *model.NewCosmeticsResponse {
	doc := &model.NewCosmeticsResponse{Status: 200}
	for _, id := range ids {
		doc.Data.Items.BR = append(doc.Data.Items.BR, model.Cosmetic{ID: id})
	}
	return doc
}

func shopEntry(final, regular int, ids ...string) model.ShopEntry {
	e := model.ShopEntry{FinalPrice: final, RegularPrice: regular}
	for _, id := range ids {
		e.BRItems = append(e.BRItems, model.Cosmetic{ID: id, Name: "name-" + id})
	}
	return e
}

func shopDoc(entries ...model.ShopEntry) *model.ShopResponse {
	return &model.ShopResponse{Status: 200, Data: model.ShopData{Entries: entries}}
}

// scenarioCatalog is three cosmetics with B and C bundled at 100 (regular 150).
func scenarioCatalog() (*model.CosmeticsResponse, *model.NewCosmeticsResponse, *model.ShopResponse) {
	catalog := catalogDoc(
		cosmetic("A", "Alpha", "outfit", "rare", 3),
		cosmetic("B", "Bravo", "outfit", "epic", 2),
		cosmetic("C", "Charlie", "emote", "epic", 1),
	)
	return catalog, newDoc("C"), shopDoc(shopEntry(100, 150, "B", "C"))
}

func ids(list []model.EnrichedCosmetic) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
