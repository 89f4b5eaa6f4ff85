package services

import (
	"car_configurator_server/database"
	"context"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`       // in seconds
	CurrentTime  time.Time `json:"currentTime"`  // server current time
	ServiceAlive bool      `json:"serviceAlive"` // always true if service is running
	RamStats     *RamStats `json:"ramStats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"totalMb"`
	UsedMB      uint64 `json:"usedMb"`
	FreeMB      uint64 `json:"freeMb"`
	UsedPercent uint64 `json:"usedPercent"`
}

type dependencyStatus struct {
	Connected      bool           `json:"connected"`
	LastChecked    time.Time      `json:"lastChecked"`
	ResponseTimeMs int64          `json:"responseTimeMs"`
	Stats          map[string]any `json:"stats,omitempty"`
}

// Pinger is anything the health checks can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dbPinger struct{ db *database.DB }

func (p dbPinger) Ping(ctx context.Context) error { return p.db.Health(ctx) }

type HealthService struct {
	logger *gecho.Logger
	db     Pinger
	cache  *CacheService
}

// NewHealthService builds the health checks. cache may be nil.
func NewHealthService(logger *gecho.Logger, db Pinger, cache *CacheService) *HealthService {
	return &HealthService{logger: logger, db: db, cache: cache}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
	}
}

func pingTimed(ctx context.Context, p Pinger) (dependencyStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	return dependencyStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}, err
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (dependencyStatus, error) {
	status, err := pingTimed(ctx, hs.db)
	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	return status, err
}

// GetCacheHealthStatus pings Redis. A disabled cache reports disconnected without an error.
func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (dependencyStatus, error) {
	if hs.cache == nil || !hs.cache.Enabled() {
		return dependencyStatus{LastChecked: time.Now(), Stats: map[string]any{"enabled": false}}, nil
	}
	status, err := pingTimed(ctx, hs.cache)
	status.Stats = hs.cache.GetConnectionStats()
	if err != nil {
		hs.logger.Warn("Cache health check failed", gecho.Field("error", err))
	}
	return status, err
}
