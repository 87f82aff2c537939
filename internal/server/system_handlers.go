package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/akyriacou/cryptosage/internal/clientdata"
)

// SystemHandlers handles system monitoring endpoints.
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	startupTime time.Time
	cacheRepo   *clientdata.Repository
}

// NewSystemHandlers creates the system handlers.
func NewSystemHandlers(log zerolog.Logger, dataDir string, cacheRepo *clientdata.Repository) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		dataDir:     dataDir,
		startupTime: time.Now(),
		cacheRepo:   cacheRepo,
	}
}

// SystemStatusResponse is the payload of the system status endpoint.
type SystemStatusResponse struct {
	Status        string           `json:"status"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	GoVersion     string           `json:"go_version"`
	NumGoroutine  int              `json:"num_goroutine"`
	CPUPercent    float64          `json:"cpu_percent"`
	MemoryPercent float64          `json:"memory_percent"`
	MemoryUsedMB  float64          `json:"memory_used_mb"`
	CacheDBSizeKB int64            `json:"cache_db_size_kb"`
	CacheEntries  map[string]int64 `json:"cache_entries"`
}

// HandleSystemStatus returns process and cache health.
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		GoVersion:     runtime.Version(),
		NumGoroutine:  runtime.NumGoroutine(),
	}

	// Sampled over a short interval; zero on platforms without support.
	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		response.CPUPercent = percents[0]
	} else if err != nil {
		h.log.Warn().Err(err).Msg("CPU usage unavailable")
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		response.MemoryPercent = vmStat.UsedPercent
		response.MemoryUsedMB = float64(vmStat.Used) / 1024 / 1024
	} else {
		h.log.Warn().Err(err).Msg("Memory usage unavailable")
	}

	if info, err := os.Stat(filepath.Join(h.dataDir, "client_data.db")); err == nil {
		response.CacheDBSizeKB = info.Size() / 1024
	}

	if h.cacheRepo != nil {
		entries, err := h.cacheRepo.Stats()
		if err != nil {
			h.log.Warn().Err(err).Msg("Cache stats unavailable")
			response.Status = "degraded"
		}
		response.CacheEntries = entries
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
