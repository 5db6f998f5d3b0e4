package handler

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
		wantErr  bool
	}{
		{"", 1, 20, false},
		{"page=3&pageSize=50", 3, 50, false},
		{"pageSize=100", 1, 100, false},
		{"pageSize=15", 0, 0, true},
		{"page=0", 0, 0, true},
		{"page=abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			page, pageSize, apiErr := parsePagination(r)
			if tt.wantErr {
				require.NotNil(t, apiErr)
				assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 20))
	assert.Equal(t, 40, pageOffset(3, 20))
	assert.Equal(t, maxOffset, pageOffset(math.MaxInt64, 100))
	assert.Equal(t, maxOffset, pageOffset(math.MaxInt64/50, 100))
}

func TestParseSearchFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/?name=%20storm%20&type=outfit&dateFrom=2024-01-01&dateTo=2024-01-31&onlyNew=true&onlyOwned=1&minPrice=100&maxPrice=2000&sortBy=price_asc", nil)

	f, apiErr := parseSearchFilter(r)
	require.Nil(t, apiErr)

	assert.Equal(t, "storm", f.Name)
	assert.Equal(t, "outfit", f.Type)
	assert.True(t, f.OnlyNew)
	assert.True(t, f.OnlyOwned)
	assert.False(t, f.OnlyBundle)
	assert.Equal(t, 100, *f.MinPrice)
	assert.Equal(t, 2000, *f.MaxPrice)
	assert.Equal(t, "price_asc", f.SortBy)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *f.DateTo)
	assert.True(t, f.IsActive())
}

func TestParseSearchFilter_RFC3339(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?dateTo=2024-01-31T12:00:00Z", nil)

	f, apiErr := parseSearchFilter(r)
	require.Nil(t, apiErr)
	assert.Equal(t, time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), f.DateTo.UTC())
}

func TestParseSearchFilter_Invalid(t *testing.T) {
	for _, q := range []string{"dateFrom=yesterday", "minPrice=cheap", "onlyNew=maybe"} {
		r := httptest.NewRequest(http.MethodGet, "/?"+q, nil)
		_, apiErr := parseSearchFilter(r)
		assert.NotNil(t, apiErr, q)
	}
}

func TestDecodeJSON_Validation(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":0}`))

	var req PurchaseRequest
	apiErr := decodeJSON(r, &req, false)
	require.NotNil(t, apiErr)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "price", apiErr.Details[0].Field)
}

func TestDecodeJSON_PriceCeiling(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":9223372036854775807}`))

	var purchase PurchaseRequest
	apiErr := decodeJSON(r, &purchase, false)
	require.NotNil(t, apiErr)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "price", apiErr.Details[0].Field)
	assert.Equal(t, "must be at most 1000000", apiErr.Details[0].Message)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"items":[{"cosmeticId":"A","price":9223372036854775807},{"cosmeticId":"B","price":9223372036854775807}]}`))

	var bundle BundleRequest
	apiErr = decodeJSON(r, &bundle, false)
	require.NotNil(t, apiErr)
	assert.Len(t, apiErr.Details, 2)
}

func TestDecodeJSON_BundleItems(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"cosmeticId":"A","price":5},{"price":-1}]}`))

	var req BundleRequest
	apiErr := decodeJSON(r, &req, false)
	require.NotNil(t, apiErr)

	fields := make([]string, len(apiErr.Details))
	for i, d := range apiErr.Details {
		fields[i] = d.Field
	}
	assert.ElementsMatch(t, []string{"items[1].cosmeticId", "items[1].price"}, fields)
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	var refund RefundRequest
	assert.Nil(t, decodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &refund, true))

	var purchase PurchaseRequest
	apiErr := decodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &purchase, false)
	require.NotNil(t, apiErr)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}
