package model

import "time"

// BundleItem is one member of a bundle with its share of the bundle price.
type BundleItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// EnrichedCosmetic is a catalog cosmetic annotated with shop, novelty and ownership data.
type EnrichedCosmetic struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Type         Descriptor   `json:"type"`
	Rarity       Descriptor   `json:"rarity"`
	Images       Images       `json:"images"`
	Added        time.Time    `json:"added"`
	IsNew        bool         `json:"isNew"`
	IsInShop     bool         `json:"isInShop"`
	IsOnSale     bool         `json:"isOnSale"`
	IsOwned      bool         `json:"isOwned"`
	IsBundle     bool         `json:"isBundle"`
	Price        *int         `json:"price"`
	RegularPrice *int         `json:"regularPrice"`
	BundleItems  []BundleItem `json:"bundleItems,omitempty"`
}

// SearchFilter holds the optional search predicates and the sort order.
// Boolean flags only restrict when true.
type SearchFilter struct {
	Name       string
	Type       string
	Rarity     string
	DateFrom   *time.Time
	DateTo     *time.Time
	OnlyNew    bool
	OnlyInShop bool
	OnlyOnSale bool
	OnlyOwned  bool
	OnlyBundle bool
	MinPrice   *int
	MaxPrice   *int
	SortBy     string
}

// IsActive reports whether any predicate is set. SortBy alone does not count.
func (f SearchFilter) IsActive() bool {
	return f.Name != "" || f.Type != "" || f.Rarity != "" ||
		f.DateFrom != nil || f.DateTo != nil ||
		f.OnlyNew || f.OnlyInShop || f.OnlyOnSale || f.OnlyOwned || f.OnlyBundle ||
		f.MinPrice != nil || f.MaxPrice != nil
}

// WithoutTypeAndRarity returns a copy with the type and rarity predicates cleared.
func (f SearchFilter) WithoutTypeAndRarity() SearchFilter {
	f.Type = ""
	f.Rarity = ""
	return f
}

// SearchResult is one page of a search.
type SearchResult struct {
	Cosmetics  []EnrichedCosmetic `json:"cosmetics"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}

// FilterOption is a selectable type or rarity value with its match count.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterOptions lists the selectable types and rarities.
type FilterOptions struct {
	Types    []FilterOption `json:"types"`
	Rarities []FilterOption `json:"rarities"`
}
