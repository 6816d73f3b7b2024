package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-insight-api/internal/dto"
	"github.com/noah-isme/lms-insight-api/internal/middleware"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
	"github.com/noah-isme/lms-insight-api/pkg/response"
)

type metricsAggregator interface {
	AggregateCourse(ctx context.Context, courseID string) (*dto.CourseMetricsBundle, bool, error)
	AggregateStudent(ctx context.Context, learnerID string) (*dto.StudentMetricsBundle, bool, error)
}

// AnalyticsHandler exposes the aggregation engine over HTTP.
type AnalyticsHandler struct {
	aggregator metricsAggregator
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(aggregator metricsAggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: aggregator}
}

// CourseMetrics godoc
// @Summary Course performance metrics bundle
// @Tags Analytics
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/metrics [get]
func (h *AnalyticsHandler) CourseMetrics(c *gin.Context) {
	if h.aggregator == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	courseID := strings.TrimSpace(c.Param("courseId"))
	if courseID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseId is required"))
		return
	}
	start := time.Now()
	bundle, cacheHit, err := h.aggregator.AggregateCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetSnapshotID(c, bundle.SnapshotID)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, bundle, meta)
}

// StudentMetrics godoc
// @Summary Student performance metrics bundle
// @Tags Analytics
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/metrics [get]
func (h *AnalyticsHandler) StudentMetrics(c *gin.Context) {
	if h.aggregator == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	learnerID := strings.TrimSpace(c.Param("studentId"))
	if learnerID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	start := time.Now()
	bundle, cacheHit, err := h.aggregator.AggregateStudent(c.Request.Context(), learnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetSnapshotID(c, bundle.SnapshotID)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, bundle, meta)
}
