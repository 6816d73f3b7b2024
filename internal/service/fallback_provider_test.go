package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lms-insight-api/internal/dto"
)

func TestFallbackDefaultsAreRecognisablyEmpty(t *testing.T) {
	provider := NewFallbackProvider()

	assert.Equal(t, 0, provider.DefaultFor("student_count"))
	assert.Equal(t, 0.0, provider.DefaultFor("attendance_rate"))
	assert.Equal(t, []dto.BandBucket{}, provider.DefaultFor("grade_distribution"))
	assert.Equal(t, []dto.TopPerformer{}, provider.DefaultFor("top_performers"))
	assert.Equal(t, dto.ActivityKindStats{}, provider.DefaultFor("quiz_stats"))
	assert.Equal(t, []dto.CourseProgress{}, provider.DefaultFor("courses"))
}

func TestFallbackUnknownMetricReturnsNil(t *testing.T) {
	provider := NewFallbackProvider()
	assert.Nil(t, provider.DefaultFor("no_such_metric"))
}

func TestFallbackEmptyCourseBundleIsFullyShaped(t *testing.T) {
	provider := NewFallbackProvider()
	generatedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	bundle := provider.EmptyCourseBundle("snap-1", "course-1", generatedAt)
	assert.Equal(t, "snap-1", bundle.SnapshotID)
	assert.Equal(t, "course-1", bundle.CourseID)
	assert.Equal(t, generatedAt, bundle.GeneratedAt)
	assert.Equal(t, 0, bundle.StudentCount)
	assert.NotNil(t, bundle.GradeDistribution)
	assert.Empty(t, bundle.GradeDistribution)
	assert.NotNil(t, bundle.ExamResults)
	assert.NotNil(t, bundle.TopPerformers)
	assert.NotNil(t, bundle.SubjectAverages)
}

func TestFallbackEmptyStudentBundleIsFullyShaped(t *testing.T) {
	provider := NewFallbackProvider()
	generatedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	bundle := provider.EmptyStudentBundle("snap-1", "learner-1", generatedAt)
	assert.Equal(t, "learner-1", bundle.LearnerID)
	assert.Equal(t, 0.0, bundle.OverallPercentage)
	assert.NotNil(t, bundle.CompletionByKind)
	assert.Empty(t, bundle.CompletionByKind)
	assert.NotNil(t, bundle.Courses)
	assert.Equal(t, 0.0, bundle.HoursSpent)
}
