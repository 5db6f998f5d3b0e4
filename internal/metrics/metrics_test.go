package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/v1/cosmetics", "200", 0.2)
	RecordHTTPRequest("GET", "/api/v1/cosmetics", "200", 0.1)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/cosmetics", "200"))
	assert.Equal(t, float64(2), count)
}

func TestRecordLedgerOperation(t *testing.T) {
	LedgerOperationsTotal.Reset()

	RecordLedgerOperation("purchase", "success")
	RecordLedgerOperation("purchase", "insufficient_balance")
	RecordLedgerOperation("purchase", "success")

	assert.Equal(t, float64(2), testutil.ToFloat64(LedgerOperationsTotal.WithLabelValues("purchase", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LedgerOperationsTotal.WithLabelValues("purchase", "insufficient_balance")))
}

func TestRecordUpstreamFetch(t *testing.T) {
	UpstreamFetchesTotal.Reset()

	RecordUpstreamFetch("shop", nil)
	RecordUpstreamFetch("shop", errors.New("timeout"))

	assert.Equal(t, float64(1), testutil.ToFloat64(UpstreamFetchesTotal.WithLabelValues("shop", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(UpstreamFetchesTotal.WithLabelValues("shop", "error")))
}

func TestRecordStaleServed(t *testing.T) {
	CatalogStaleServedTotal.Reset()

	RecordStaleServed("catalog")

	assert.Equal(t, float64(1), testutil.ToFloat64(CatalogStaleServedTotal.WithLabelValues("catalog")))
}
