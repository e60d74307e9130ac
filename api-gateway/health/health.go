package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pixelpour/storefront/api-gateway/config"
	"github.com/pixelpour/storefront/pkg/logger"
)

// InstanceHealth represents the health status of a single backend instance
type InstanceHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"` // healthy, unhealthy, unknown
	URL       string        `json:"url"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway   string                    `json:"gateway"`
	Status    string                    `json:"status"` // healthy, degraded, unhealthy
	Instances map[string]InstanceHealth `json:"instances"`
	Uptime    time.Duration             `json:"uptime_seconds"`
}

// HealthChecker checks health of downstream storefront instances
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckInstance checks health of a single backend instance
func (h *HealthChecker) CheckInstance(ctx context.Context, name, baseURL, healthPath string) InstanceHealth {
	start := time.Now()
	healthURL := baseURL + healthPath

	result := InstanceHealth{
		Name:      name,
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, "GET", healthURL, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach service: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}

	return result
}

// CheckAllInstances checks health of every storefront instance concurrently
func (h *HealthChecker) CheckAllInstances(ctx context.Context) GatewayHealth {
	instances := make(map[string]InstanceHealth)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for svcName, svc := range h.config.Services {
		for i, instanceURL := range svc.Instances {
			wg.Add(1)
			go func(name, url, healthPath string) {
				defer wg.Done()
				health := h.CheckInstance(ctx, name, url, healthPath)

				mu.Lock()
				instances[name] = health
				mu.Unlock()

				if health.Status == "healthy" {
					logger.Logger.Debug().
						Str("instance", name).
						Str("status", health.Status).
						Dur("latency", health.Latency).
						Msg("Instance health check")
				} else {
					logger.Logger.Warn().
						Str("instance", name).
						Str("status", health.Status).
						Str("error", health.Error).
						Msg("Instance health check failed")
				}
			}(fmt.Sprintf("%s-%d", svcName, i), instanceURL, svc.HealthCheck)
		}
	}

	wg.Wait()

	return GatewayHealth{
		Gateway:   "storefront-gateway",
		Status:    h.determineOverallStatus(instances),
		Instances: instances,
		Uptime:    time.Since(h.startTime),
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthChecker) determineOverallStatus(instances map[string]InstanceHealth) string {
	healthyCount := 0
	totalCount := len(instances)

	for _, inst := range instances {
		if inst.Status == "healthy" {
			healthyCount++
		}
	}

	if healthyCount == totalCount {
		return "healthy"
	} else if healthyCount > 0 {
		return "degraded"
	}
	return "unhealthy"
}

// QuickCheck performs a quick health check (just gateway itself)
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "storefront-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
