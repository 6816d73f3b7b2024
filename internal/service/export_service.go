package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-insight-api/internal/dto"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
	"github.com/noah-isme/lms-insight-api/pkg/export"
)

// ReportFormat is the requested download encoding.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

// ReportType selects which slice of the course bundle is tabulated.
type ReportType string

const (
	ReportSummary    ReportType = "summary"
	ReportPerformers ReportType = "performers"
)

// ReportRequest describes one inline report download.
type ReportRequest struct {
	CourseID string `validate:"required"`
	Type     string `validate:"required,oneof=summary performers"`
	Format   string `validate:"required,oneof=csv pdf"`
}

// ReportFile is a fully rendered report ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type courseAggregator interface {
	AggregateCourse(ctx context.Context, courseID string) (*dto.CourseMetricsBundle, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService turns course metric bundles into downloadable CSV or PDF
// documents. Reports are rendered in memory and streamed inline; nothing is
// written to disk.
type ExportService struct {
	aggregator courseAggregator
	csv        csvRenderer
	pdf        pdfRenderer
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewExportService wires the exporter over an aggregator and renderers.
func NewExportService(aggregator courseAggregator, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		aggregator: aggregator,
		csv:        csv,
		pdf:        pdf,
		validate:   validator.New(),
		logger:     logger,
	}
}

// GenerateCourseReport aggregates the course and renders the requested table.
func (s *ExportService) GenerateCourseReport(ctx context.Context, req ReportRequest) (*ReportFile, error) {
	if req.Type == "" {
		req.Type = string(ReportSummary)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	bundle, _, err := s.aggregator.AggregateCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	var dataset export.Dataset
	var title string
	switch ReportType(req.Type) {
	case ReportPerformers:
		dataset, title = buildPerformerDataset(bundle)
	default:
		dataset, title = buildSummaryDataset(bundle)
	}
	dataset.Footer = fmt.Sprintf("snapshot %s, generated %s", bundle.SnapshotID, bundle.GeneratedAt.Format(time.RFC3339))

	filename := fmt.Sprintf("%s-%s-%s", req.Type, sanitizeFilename(req.CourseID), bundle.GeneratedAt.Format("20060102-150405"))

	switch ReportFormat(req.Format) {
	case FormatPDF:
		body, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
		}
		return &ReportFile{Filename: filename + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
		}
		return &ReportFile{Filename: filename + ".csv", ContentType: "text/csv", Body: body}, nil
	}
}

func buildSummaryDataset(bundle *dto.CourseMetricsBundle) (export.Dataset, string) {
	rows := []map[string]string{
		{"Metric": "Student Count", "Value": fmt.Sprintf("%d", bundle.StudentCount)},
		{"Metric": "Attendance Rate (%)", "Value": export.FormatPercent(bundle.AttendanceRate)},
		{"Metric": "Total Activities", "Value": fmt.Sprintf("%d", bundle.CourseStats.TotalActivities)},
		{"Metric": "Completed Activities", "Value": fmt.Sprintf("%d", bundle.CourseStats.CompletedActivities)},
		{"Metric": "Students With Grades", "Value": fmt.Sprintf("%d", bundle.CourseStats.StudentsWithGrades)},
	}
	for _, bucket := range bundle.GradeDistribution {
		rows = append(rows, map[string]string{
			"Metric": fmt.Sprintf("Band %s", bucket.Band),
			"Value":  fmt.Sprintf("%d", bucket.StudentCount),
		})
	}
	for _, subject := range bundle.SubjectAverages {
		rows = append(rows, map[string]string{
			"Metric": fmt.Sprintf("Subject Average %s (%%)", subject.Subject),
			"Value":  export.FormatPercent(subject.AveragePercentage),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
	return dataset, fmt.Sprintf("Course Summary %s", bundle.CourseID)
}

func buildPerformerDataset(bundle *dto.CourseMetricsBundle) (export.Dataset, string) {
	rows := make([]map[string]string, 0, len(bundle.TopPerformers))
	for _, p := range bundle.TopPerformers {
		rows = append(rows, map[string]string{
			"Rank":        fmt.Sprintf("%d", p.Rank),
			"Learner ID":  p.LearnerID,
			"Average (%)": export.FormatPercent(p.AveragePercentage),
			"Completed":   fmt.Sprintf("%d", p.CompletedActivities),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Rank", "Learner ID", "Average (%)", "Completed"},
		Rows:    rows,
	}
	return dataset, fmt.Sprintf("Top Performers %s", bundle.CourseID)
}

func sanitizeFilename(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, raw)
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "report"
	}
	return cleaned
}
