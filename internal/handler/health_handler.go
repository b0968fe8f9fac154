package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context, timeout time.Duration) error
}

type HealthHandler struct {
	pinger  Pinger
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(pinger Pinger, timeout time.Duration, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, timeout: timeout, logger: logger}
}

// Check reports 503 while the database cannot be reached.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context(), h.timeout); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
