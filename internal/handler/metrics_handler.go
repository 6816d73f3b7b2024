package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-insight-api/internal/middleware"
	"github.com/noah-isme/lms-insight-api/internal/service"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
	"github.com/noah-isme/lms-insight-api/pkg/response"
)

type storePinger interface {
	PingContext(ctx context.Context) error
}

type bundleCacheFlusher interface {
	Enabled() bool
	Invalidate(ctx context.Context, pattern string) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   storePinger
	cache   bundleCacheFlusher
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, store storePinger, cache bundleCacheFlusher) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: store, cache: cache}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready verifies the backing store is reachable before reporting ready.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// System godoc
// @Summary Engine instrumentation snapshot
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/metrics [get]
func (h *MetricsHandler) System(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	snapshot := h.metrics.Snapshot()
	middleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, snapshot, middleware.ExtractMeta(c))
}

// FlushBundleCache godoc
// @Summary Drop cached metric bundles so the next request recomputes
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/cache [delete]
func (h *MetricsHandler) FlushBundleCache(c *gin.Context) {
	if h.cache == nil || !h.cache.Enabled() {
		response.JSON(c, http.StatusOK, gin.H{"flushed": false}, middleware.ExtractMeta(c))
		return
	}
	if err := h.cache.Invalidate(c.Request.Context(), "bundle:*"); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "flush bundle cache"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"flushed": true}, middleware.ExtractMeta(c))
}
