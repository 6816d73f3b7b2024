package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-insight-api/internal/service"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
)

type fakeReportSrv struct {
	file    *service.ReportFile
	err     error
	lastReq service.ReportRequest
}

func (f *fakeReportSrv) GenerateCourseReport(_ context.Context, req service.ReportRequest) (*service.ReportFile, error) {
	f.lastReq = req
	return f.file, f.err
}

func TestExportHandlerCourseReportDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{file: &service.ReportFile{
		Filename:    "summary-course-1.csv",
		ContentType: "text/csv",
		Body:        []byte("Metric,Value\n"),
	}}
	handler := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/course-1/report", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "course-1"}}

	handler.CourseReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "course-1", srv.lastReq.CourseID)
	assert.Equal(t, "summary", srv.lastReq.Type)
	assert.Equal(t, "csv", srv.lastReq.Format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "summary-course-1.csv")
}

func TestExportHandlerPassesQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{file: &service.ReportFile{
		Filename:    "performers-course-1.pdf",
		ContentType: "application/pdf",
		Body:        []byte("%PDF-1.4"),
	}}
	handler := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/course-1/report?type=performers&format=pdf", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "course-1"}}

	handler.CourseReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "performers", srv.lastReq.Type)
	assert.Equal(t, "pdf", srv.lastReq.Format)
}

func TestExportHandlerValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{err: appErrors.Clone(appErrors.ErrValidation, "unsupported format")}
	handler := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/course-1/report?format=xlsx", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "course-1"}}

	handler.CourseReport(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
