package service

import (
	"time"

	"github.com/noah-isme/lms-insight-api/internal/dto"
)

// FallbackProvider declares, in one place, the synthetic default for every
// metric either bundle can carry. Defaults are recognisably empty (zero
// counts, empty lists) so callers distinguish "no data" from a measured zero
// by emptiness alone.
type FallbackProvider struct{}

// NewFallbackProvider constructs the provider.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// DefaultFor returns the default value for the named metric. It is total over
// every field of both bundles; unknown names return nil so misuse surfaces in
// tests rather than as a silently wrong dashboard.
func (p *FallbackProvider) DefaultFor(metric string) interface{} {
	switch metric {
	case "student_count":
		return 0
	case "attendance_rate":
		return 0.0
	case "grade_distribution":
		return []dto.BandBucket{}
	case "exam_results":
		return []dto.KindExamResult{}
	case "top_performers":
		return []dto.TopPerformer{}
	case "subject_averages":
		return []dto.SubjectAverage{}
	case "assignment_stats", "quiz_stats":
		return dto.ActivityKindStats{}
	case "course_stats":
		return dto.CourseStats{}
	case "overall_percentage":
		return 0.0
	case "completion_by_kind":
		return []dto.KindCompletion{}
	case "courses":
		return []dto.CourseProgress{}
	case "hours_spent":
		return 0.0
	}
	return nil
}

// EmptyCourseBundle returns the fully-shaped all-default course bundle used
// for empty courses and unreachable stores.
func (p *FallbackProvider) EmptyCourseBundle(snapshotID, courseID string, generatedAt time.Time) dto.CourseMetricsBundle {
	return dto.CourseMetricsBundle{
		SnapshotID:        snapshotID,
		CourseID:          courseID,
		GeneratedAt:       generatedAt,
		StudentCount:      p.DefaultFor("student_count").(int),
		AttendanceRate:    p.DefaultFor("attendance_rate").(float64),
		GradeDistribution: p.DefaultFor("grade_distribution").([]dto.BandBucket),
		ExamResults:       p.DefaultFor("exam_results").([]dto.KindExamResult),
		TopPerformers:     p.DefaultFor("top_performers").([]dto.TopPerformer),
		SubjectAverages:   p.DefaultFor("subject_averages").([]dto.SubjectAverage),
		AssignmentStats:   p.DefaultFor("assignment_stats").(dto.ActivityKindStats),
		QuizStats:         p.DefaultFor("quiz_stats").(dto.ActivityKindStats),
		CourseStats:       p.DefaultFor("course_stats").(dto.CourseStats),
	}
}

// EmptyStudentBundle returns the fully-shaped all-default student bundle.
func (p *FallbackProvider) EmptyStudentBundle(snapshotID, learnerID string, generatedAt time.Time) dto.StudentMetricsBundle {
	return dto.StudentMetricsBundle{
		SnapshotID:        snapshotID,
		LearnerID:         learnerID,
		GeneratedAt:       generatedAt,
		OverallPercentage: p.DefaultFor("overall_percentage").(float64),
		CompletionByKind:  p.DefaultFor("completion_by_kind").([]dto.KindCompletion),
		Courses:           p.DefaultFor("courses").([]dto.CourseProgress),
		HoursSpent:        p.DefaultFor("hours_spent").(float64),
	}
}
