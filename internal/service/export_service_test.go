package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-insight-api/internal/dto"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
	"github.com/noah-isme/lms-insight-api/pkg/export"
)

type fakeAggregator struct {
	bundle *dto.CourseMetricsBundle
	err    error
}

func (f *fakeAggregator) AggregateCourse(context.Context, string) (*dto.CourseMetricsBundle, bool, error) {
	return f.bundle, false, f.err
}

func sampleBundle() *dto.CourseMetricsBundle {
	return &dto.CourseMetricsBundle{
		SnapshotID:     "snap-1",
		CourseID:       "course-1",
		GeneratedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		StudentCount:   2,
		AttendanceRate: 50.0,
		GradeDistribution: []dto.BandBucket{
			{Band: "Pass", StudentCount: 1},
			{Band: "Fail", StudentCount: 1},
		},
		TopPerformers: []dto.TopPerformer{
			{Rank: 1, LearnerID: "learner-1", AveragePercentage: 90, CompletedActivities: 3},
		},
		CourseStats: dto.CourseStats{TotalActivities: 4, CompletedActivities: 3, StudentsWithGrades: 2},
	}
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, nil, nil)

	_, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Type:     "summary",
		Format:   "xlsx",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRejectsMissingCourse(t *testing.T) {
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, nil, nil)

	_, err := svc.GenerateCourseReport(context.Background(), ReportRequest{Format: "csv"})
	require.Error(t, err)
}

func TestExportServiceSummaryCSV(t *testing.T) {
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, nil, nil)

	file, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Format:   "csv",
	})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	assert.Contains(t, file.Filename, "summary-course-1")

	body := string(file.Body)
	assert.Contains(t, body, "Metric,Value")
	assert.Contains(t, body, "Student Count,2")
	assert.Contains(t, body, "Attendance Rate (%),50.0")
	assert.Contains(t, body, "Band Pass,1")
}

func TestExportServicePerformersCSV(t *testing.T) {
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, nil, nil)

	file, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Type:     "performers",
		Format:   "csv",
	})
	require.NoError(t, err)

	body := string(file.Body)
	assert.Contains(t, body, "Rank,Learner ID,Average (%),Completed")
	assert.Contains(t, body, "1,learner-1,90.0,3")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, nil, nil)

	file, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Format:   "pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
}

type capturingPDF struct {
	dataset export.Dataset
	title   string
}

func (c *capturingPDF) Render(data export.Dataset, title string) ([]byte, error) {
	c.dataset = data
	c.title = title
	return []byte("%PDF-1.4"), nil
}

func TestExportServiceStampsProvenanceFooter(t *testing.T) {
	pdf := &capturingPDF{}
	svc := NewExportService(&fakeAggregator{bundle: sampleBundle()}, nil, pdf, nil)

	_, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Format:   "pdf",
	})
	require.NoError(t, err)

	assert.Contains(t, pdf.dataset.Footer, "snapshot snap-1")
	assert.Contains(t, pdf.dataset.Footer, "2026-08-30T12:00:00Z")
}

func TestExportServicePropagatesAggregationError(t *testing.T) {
	svc := NewExportService(&fakeAggregator{err: errors.New("boom")}, nil, nil, nil)

	_, err := svc.GenerateCourseReport(context.Background(), ReportRequest{
		CourseID: "course-1",
		Format:   "csv",
	})
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "course-1", sanitizeFilename("course-1"))
	assert.Equal(t, "a-b", sanitizeFilename("a/b"))
	assert.Equal(t, "report", sanitizeFilename("///"))
}
