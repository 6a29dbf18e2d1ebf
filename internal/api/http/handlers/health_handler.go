package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by every persistence wrapper with dependency checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to the status route and the readiness probe.
type HealthHandler struct {
	serviceName string
	deps        map[string]Pinger
}

// NewHealthHandler returns a new handler instance. Nil dependencies are
// skipped in the readiness probe.
func NewHealthHandler(serviceName string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, deps: deps}
}

// Status handles GET /.
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "Server is running smoothly",
		"timestamp": time.Now(),
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
		} else {
			depStatus[name] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"service":      h.serviceName,
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":       "unavailable",
		"service":      h.serviceName,
		"dependencies": depStatus,
	})
}
