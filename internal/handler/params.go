package handler

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/pkg/apierror"
)

const (
	defaultPageSize = 20
	maxOffset       = math.MaxInt32
)

var allowedPageSizes = map[int]bool{10: true, 20: true, 50: true, 100: true}

// parsePagination reads page (>= 1, default 1) and pageSize (10, 20, 50 or
// 100, default 20).
func parsePagination(r *http.Request) (page, pageSize int, apiErr *apierror.Error) {
	q := r.URL.Query()

	page = 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, apierror.BadRequest("page must be a positive integer")
		}
		page = n
	}

	pageSize = defaultPageSize
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !allowedPageSizes[n] {
			return 0, 0, apierror.BadRequest("pageSize must be one of 10, 20, 50, 100")
		}
		pageSize = n
	}

	return page, pageSize, nil
}

// pageOffset returns the row offset of page, clamped to what every SQL
// dialect accepts.
func pageOffset(page, pageSize int) int {
	if page-1 > maxOffset/pageSize {
		return maxOffset
	}
	return (page - 1) * pageSize
}

// parseSearchFilter reads every search predicate from the query string.
func parseSearchFilter(r *http.Request) (model.SearchFilter, *apierror.Error) {
	q := r.URL.Query()
	f := model.SearchFilter{
		Name:   strings.TrimSpace(q.Get("name")),
		Type:   strings.TrimSpace(q.Get("type")),
		Rarity: strings.TrimSpace(q.Get("rarity")),
		SortBy: q.Get("sortBy"),
	}

	var apiErr *apierror.Error
	if f.DateFrom, apiErr = parseDate(q, "dateFrom", false); apiErr != nil {
		return f, apiErr
	}
	if f.DateTo, apiErr = parseDate(q, "dateTo", true); apiErr != nil {
		return f, apiErr
	}
	if f.MinPrice, apiErr = parseOptionalInt(q, "minPrice"); apiErr != nil {
		return f, apiErr
	}
	if f.MaxPrice, apiErr = parseOptionalInt(q, "maxPrice"); apiErr != nil {
		return f, apiErr
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"onlyNew", &f.OnlyNew},
		{"onlyInShop", &f.OnlyInShop},
		{"onlyOnSale", &f.OnlyOnSale},
		{"onlyOwned", &f.OnlyOwned},
		{"onlyBundle", &f.OnlyBundle},
	}
	for _, flag := range flags {
		raw := q.Get(flag.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apierror.BadRequest(flag.name + " must be true or false")
		}
		*flag.dst = v
	}

	return f, nil
}

// parseDate accepts RFC 3339 or YYYY-MM-DD. A bare date used as an upper
// bound covers the whole day.
func parseDate(q url.Values, key string, endOfDay bool) (*time.Time, *apierror.Error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apierror.BadRequest(key + " must be YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func parseOptionalInt(q url.Values, key string) (*int, *apierror.Error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierror.BadRequest(key + " must be an integer")
	}
	return &n, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}
