package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-insight-api/internal/service"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
	"github.com/noah-isme/lms-insight-api/pkg/response"
)

type reportGenerator interface {
	GenerateCourseReport(ctx context.Context, req service.ReportRequest) (*service.ReportFile, error)
}

// ExportHandler streams rendered course reports inline.
type ExportHandler struct {
	exports reportGenerator
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports reportGenerator) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// CourseReport godoc
// @Summary Download a course metrics report
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path string true "Course ID"
// @Param type query string false "Report type (summary or performers)" default(summary)
// @Param format query string false "Output format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Router /courses/{courseId}/report [get]
func (h *ExportHandler) CourseReport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req := service.ReportRequest{
		CourseID: strings.TrimSpace(c.Param("courseId")),
		Type:     strings.TrimSpace(c.DefaultQuery("type", "summary")),
		Format:   strings.TrimSpace(c.DefaultQuery("format", "csv")),
	}
	file, err := h.exports.GenerateCourseReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
