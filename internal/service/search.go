package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"cosmetics-store-api/internal/model"
)

// Sort orders accepted by search and listing.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// NormalizeSort maps empty or unknown sort names to SortNewest.
func NormalizeSort(sortBy string) string {
	switch s := strings.ToLower(strings.TrimSpace(sortBy)); s {
	case SortNewest, SortOldest, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return s
	default:
		return SortNewest
	}
}

type sortKey struct {
	name  string
	added time.Time
	price *int
}

// sortOrder returns a stable permutation of [0, n) ordered by sortBy.
func sortOrder(n int, key func(i int) sortKey, sortBy string) []int {
	keys := make([]sortKey, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		keys[i] = key(i)
		keys[i].name = strings.ToLower(keys[i].name)
		order[i] = i
	}

	var less func(a, b *sortKey) bool
	switch NormalizeSort(sortBy) {
	case SortOldest:
		less = func(a, b *sortKey) bool { return a.added.Before(b.added) }
	case SortNameAsc:
		less = func(a, b *sortKey) bool { return a.name < b.name }
	case SortNameDesc:
		less = func(a, b *sortKey) bool { return a.name > b.name }
	case SortPriceAsc:
		less = func(a, b *sortKey) bool { return priceOr(a.price, math.MaxInt) < priceOr(b.price, math.MaxInt) }
	case SortPriceDesc:
		less = func(a, b *sortKey) bool { return priceOr(a.price, math.MinInt) > priceOr(b.price, math.MinInt) }
	default:
		less = func(a, b *sortKey) bool { return a.added.After(b.added) }
	}

	sort.SliceStable(order, func(i, j int) bool {
		return less(&keys[order[i]], &keys[order[j]])
	})
	return order
}

func priceOr(p *int, missing int) int {
	if p == nil {
		return missing
	}
	return *p
}

// Paginate returns the 1-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 || len(items) == 0 {
		return []T{}
	}
	// Compare page counts first so (page-1)*pageSize cannot overflow.
	if page-1 > (len(items)-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	return items[start:end]
}

type predicate func(c *model.EnrichedCosmetic) bool

// SearchEngine filters, sorts and pages enriched cosmetics.
type SearchEngine struct{}

// NewSearchEngine creates a search engine.
func NewSearchEngine() *SearchEngine {
	return &SearchEngine{}
}

// predicates returns the active filters in their fixed evaluation order:
// name, type, rarity, date range, new, in shop, on sale, owned, bundle, price range.
func (s *SearchEngine) predicates(f model.SearchFilter) []predicate {
	var ps []predicate

	if name := strings.TrimSpace(f.Name); name != "" {
		needle := strings.ToLower(name)
		ps = append(ps, func(c *model.EnrichedCosmetic) bool {
			return strings.Contains(strings.ToLower(c.Name), needle)
		})
	}
	if typ := strings.TrimSpace(f.Type); typ != "" {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool {
			return strings.EqualFold(c.Type.Value, typ)
		})
	}
	if rarity := strings.TrimSpace(f.Rarity); rarity != "" {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool {
			return strings.EqualFold(c.Rarity.Value, rarity)
		})
	}
	if f.DateFrom != nil {
		from := *f.DateFrom
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return !c.Added.Before(from) })
	}
	if f.DateTo != nil {
		to := *f.DateTo
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return !c.Added.After(to) })
	}
	if f.OnlyNew {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.IsNew })
	}
	if f.OnlyInShop {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.IsInShop })
	}
	if f.OnlyOnSale {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.IsOnSale })
	}
	if f.OnlyOwned {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.IsOwned })
	}
	if f.OnlyBundle {
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.IsBundle })
	}
	if f.MinPrice != nil {
		lo := *f.MinPrice
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.Price != nil && *c.Price >= lo })
	}
	if f.MaxPrice != nil {
		hi := *f.MaxPrice
		ps = append(ps, func(c *model.EnrichedCosmetic) bool { return c.Price != nil && *c.Price <= hi })
	}

	return ps
}

// Filter returns the items matching every predicate of f, in input order.
func (s *SearchEngine) Filter(list []model.EnrichedCosmetic, f model.SearchFilter) []model.EnrichedCosmetic {
	ps := s.predicates(f)
	out := make([]model.EnrichedCosmetic, 0, len(list))

next:
	for i := range list {
		for _, p := range ps {
			if !p(&list[i]) {
				continue next
			}
		}
		out = append(out, list[i])
	}
	return out
}

// Sort returns a stably sorted copy of list.
func (s *SearchEngine) Sort(list []model.EnrichedCosmetic, sortBy string) []model.EnrichedCosmetic {
	order := sortOrder(len(list), func(i int) sortKey {
		return sortKey{name: list[i].Name, added: list[i].Added, price: list[i].Price}
	}, sortBy)

	out := make([]model.EnrichedCosmetic, len(order))
	for i, j := range order {
		out[i] = list[j]
	}
	return out
}

// Search filters, sorts and pages list. TotalCount is the filtered size.
func (s *SearchEngine) Search(list []model.EnrichedCosmetic, f model.SearchFilter, page, pageSize int) model.SearchResult {
	matched := s.Sort(s.Filter(list, f), f.SortBy)

	return model.SearchResult{
		Cosmetics:  Paginate(matched, page, pageSize),
		TotalCount: len(matched),
		Page:       page,
		PageSize:   pageSize,
	}
}

type optionGroup struct {
	value string
	label string
	count int
}

type optionCounter struct {
	groups map[string]*optionGroup
	order  []*optionGroup
}

func newOptionCounter() *optionCounter {
	return &optionCounter{groups: make(map[string]*optionGroup)}
}

func (o *optionCounter) register(d model.Descriptor) {
	if d.Value == "" {
		return
	}
	key := strings.ToLower(d.Value)
	if _, ok := o.groups[key]; ok {
		return
	}
	label := d.DisplayValue
	if label == "" {
		label = d.Value
	}
	g := &optionGroup{value: d.Value, label: label}
	o.groups[key] = g
	o.order = append(o.order, g)
}

func (o *optionCounter) count(d model.Descriptor) {
	if g, ok := o.groups[strings.ToLower(d.Value)]; ok {
		g.count++
	}
}

func (o *optionCounter) options() []model.FilterOption {
	out := make([]model.FilterOption, len(o.order))
	for i, g := range o.order {
		out[i] = model.FilterOption{Value: g.value, Label: g.label, Count: g.count}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Value) < strings.ToLower(out[j].Value)
	})
	return out
}

// FilterOptions lists every type and rarity present in list. Counts reflect
// f with its type and rarity predicates ignored.
func (s *SearchEngine) FilterOptions(list []model.EnrichedCosmetic, f model.SearchFilter) model.FilterOptions {
	types := newOptionCounter()
	rarities := newOptionCounter()
	for i := range list {
		types.register(list[i].Type)
		rarities.register(list[i].Rarity)
	}

	for _, c := range s.Filter(list, f.WithoutTypeAndRarity()) {
		types.count(c.Type)
		rarities.count(c.Rarity)
	}

	return model.FilterOptions{
		Types:    types.options(),
		Rarities: rarities.options(),
	}
}
