package service

import (
	"unicode/utf16"

	"cosmetics-store-api/internal/model"
)

const (
	minGeneratedPrice = 1
	maxGeneratedPrice = 10000
)

// Price is a resolved final/regular price pair.
type Price struct {
	Final   int
	Regular int
}

// PriceResolver derives the price of a cosmetic.
type PriceResolver struct{}

// NewPriceResolver creates a price resolver.
func NewPriceResolver() *PriceResolver {
	return &PriceResolver{}
}

// Resolve returns the shop prices of id when shopIndex lists it, otherwise a
// generated price with Regular equal to Final.
func (r *PriceResolver) Resolve(id string, shopIndex map[string]*model.ShopEntry) Price {
	if entry, ok := shopIndex[id]; ok {
		return Price{Final: entry.FinalPrice, Regular: entry.RegularPrice}
	}
	p := GeneratedPrice(id)
	return Price{Final: p, Regular: p}
}

// GeneratedPrice maps id to a fixed price in [1, 10000].
//
// The seed is the 31-multiplier hash over the UTF-16 code units of id with
// 32-bit wraparound, the same hash JavaScript clients compute:
//
//	h = 0; for each unit c: h = h*31 + c (int32)
//	price = |h mod 10000| + 1
func GeneratedPrice(id string) int {
	var h int32
	for _, unit := range utf16.Encode([]rune(id)) {
		h = h*31 + int32(unit)
	}

	p := int(h % maxGeneratedPrice)
	if p < 0 {
		p = -p
	}
	return p + minGeneratedPrice
}
