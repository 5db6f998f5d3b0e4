package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/pkg/response"
)

// SlotReporter reports catalog cache slots.
type SlotReporter interface {
	Statuses() []cache.SlotStatus
}

// StatsProvider reports storage statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	catalog   SlotReporter
	store     StatsProvider
	cacheType string
	startTime time.Time
}

// NewAdminHandler creates a new admin handler. store may be nil.
func NewAdminHandler(catalog SlotReporter, store StatsProvider, cacheType string) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		store:     store,
		cacheType: cacheType,
		startTime: time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["session_cache"] = h.cacheType

	if h.catalog != nil {
		stats["catalog_cache"] = h.catalog.Statuses()
	}

	if h.store != nil {
		dbStats, err := h.store.Stats(r.Context())
		if err == nil {
			dbStats["status"] = "connected"
			stats["database"] = dbStats
		} else {
			stats["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	} else {
		stats["database"] = map[string]interface{}{"status": "not_configured"}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_inuse_mb": float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}
