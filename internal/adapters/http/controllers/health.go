package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Mode     string            `json:"mode" example:"local"`
	Services map[string]string `json:"services" example:"store:ok,redis:ok"`
}

type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	mode     string
	checkers []HealthChecker
}

// NewHealthController reports mode as the active data source ("local" or
// "remote") next to the result of each checker.
func NewHealthController(mode string, checkers []HealthChecker) *HealthController {
	return &HealthController{mode: mode, checkers: checkers}
}

// Health godoc
// @Summary     Health check
// @Description Checks the data source and every optional dependency
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		healthy  = true
		services = make(map[string]string, len(h.checkers))
	)
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(checker HealthChecker) {
			defer wg.Done()
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			services[checker.Name] = result
			if result != "ok" {
				healthy = false
			}
		}(checker)
	}
	wg.Wait()

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status:   status,
		Mode:     h.mode,
		Services: services,
	})
}
