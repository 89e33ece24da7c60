// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/pkg/config"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// Pinger is anything whose reachability can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	responder
	db        ports.Database
	redis     *redis.Client
	asynq     *asynq.Inspector
	storage   Pinger
	config    *config.Config
	startTime time.Time
}

// NewHealthHandler creates a new health handler. redisClient, inspector and
// storage may be nil, in which case their checks are skipped.
func NewHealthHandler(
	database ports.Database,
	redisClient *redis.Client,
	inspector *asynq.Inspector,
	storage Pinger,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger.With(slog.String("handler", "health"))},
		db:        database,
		redis:     redisClient,
		asynq:     inspector,
		storage:   storage,
		config:    cfg,
		startTime: time.Now(),
	}
}

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      statusHealthy,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services:    make(map[string]ServiceInfo),
		System:      systemInfo(),
	}

	checks := map[string]func(context.Context) ServiceInfo{
		"database": h.checkDatabase,
	}
	if h.redis != nil {
		checks["redis"] = h.checkRedis
	}
	if h.asynq != nil {
		checks["asynq"] = h.checkAsynq
	}
	if h.storage != nil {
		checks["storage"] = h.checkStorage
	}

	for name, check := range checks {
		info := check(ctx)
		health.Services[name] = info
		if info.Status != statusHealthy {
			health.Status = statusDegraded
		}
	}

	statusCode := http.StatusOK
	if health.Status != statusHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, statusCode, health)
}

// Readiness handles GET /ready. Only the database and Redis gate readiness.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := map[string]string{"database": "ready"}

	if err := h.db.Ping(ctx); err != nil {
		ready = false
		details["database"] = "not ready"
	}
	if h.redis != nil {
		details["redis"] = "ready"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			ready = false
			details["redis"] = "not ready"
		}
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, statusCode, map[string]interface{}{
		"ready":   ready,
		"details": details,
	})
}

// Liveness handles GET /live
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ServiceInfo {
	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return h.unhealthy(ctx, "database", err)
	}
	return ServiceInfo{
		Status:       statusHealthy,
		Details:      h.db.Health(ctx),
		ResponseTime: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ServiceInfo {
	start := time.Now()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return h.unhealthy(ctx, "redis", err)
	}

	stats := h.redis.PoolStats()
	return ServiceInfo{
		Status: statusHealthy,
		Details: map[string]interface{}{
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"stale_conns": stats.StaleConns,
		},
		ResponseTime: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkAsynq(ctx context.Context) ServiceInfo {
	start := time.Now()
	queues, err := h.asynq.Queues()
	if err != nil {
		return h.unhealthy(ctx, "asynq", err)
	}

	queueStats := make(map[string]interface{}, len(queues))
	for _, queue := range queues {
		qInfo, err := h.asynq.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		queueStats[queue] = map[string]interface{}{
			"pending":  qInfo.Pending,
			"active":   qInfo.Active,
			"retry":    qInfo.Retry,
			"archived": qInfo.Archived,
		}
	}

	details := map[string]interface{}{"queues": queueStats}
	if servers, err := h.asynq.Servers(); err == nil {
		details["servers"] = len(servers)
	}

	return ServiceInfo{
		Status:       statusHealthy,
		Details:      details,
		ResponseTime: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkStorage(ctx context.Context) ServiceInfo {
	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return h.unhealthy(ctx, "storage", err)
	}
	return ServiceInfo{
		Status:       statusHealthy,
		Details:      map[string]interface{}{"driver": h.config.Storage.Driver},
		ResponseTime: time.Since(start).String(),
	}
}

func (h *HealthHandler) unhealthy(ctx context.Context, service string, err error) ServiceInfo {
	h.logger.ErrorContext(ctx, service+" health check failed",
		slog.String("error", err.Error()))
	return ServiceInfo{Status: statusUnhealthy, Message: err.Error()}
}

func systemInfo() SystemInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		MemoryAllocMB: mem.Alloc / 1024 / 1024,
		NumGC:         mem.NumGC,
	}
}
