package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Redis    string         `json:"redis"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type SystemHealth struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"mem_percent"`
	DiskPercent float64 `json:"disk_percent"`
}

type DetailedStatus struct {
	HealthStatus
	System SystemHealth `json:"system"`
}

func NewHealthChecker(db *pgxpool.Pool, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{db: db, redis: redisClient}
}

// CheckBasic reports readiness. Redis is optional, so a missing Redis only
// shows up in the payload and never flips the overall status.
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Redis:    h.checkRedis(),
	}
}

// CheckDetailed adds host resource usage for the monitoring dashboard.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	detailed := DetailedStatus{HealthStatus: h.CheckBasic()}

	if percs, err := cpu.Percent(0, false); err == nil && len(percs) > 0 {
		detailed.System.CPUPercent = percs[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		detailed.System.MemPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		detailed.System.DiskPercent = du.UsedPercent
	}
	return detailed
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkRedis() string {
	if h.redis == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
