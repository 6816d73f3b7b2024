package dto

import "time"

// CourseMetricsBundle is the engine's full output for one course. It is built
// fresh per request and treated as an immutable value by callers.
type CourseMetricsBundle struct {
	SnapshotID        string             `json:"snapshotId"`
	CourseID          string             `json:"courseId"`
	GeneratedAt       time.Time          `json:"generatedAt"`
	StudentCount      int                `json:"studentCount"`
	AttendanceRate    float64            `json:"attendanceRate"`
	GradeDistribution []BandBucket       `json:"gradeDistribution"`
	ExamResults       []KindExamResult   `json:"examResults"`
	TopPerformers     []TopPerformer     `json:"topPerformers"`
	SubjectAverages   []SubjectAverage   `json:"subjectAverages"`
	AssignmentStats   ActivityKindStats  `json:"assignmentStats"`
	QuizStats         ActivityKindStats  `json:"quizStats"`
	CourseStats       CourseStats        `json:"courseStats"`
}

// BandBucket counts learners whose course-level average lands in one band.
type BandBucket struct {
	Band         string `json:"band"`
	StudentCount int    `json:"studentCount"`
}

// KindExamResult groups pass/average/fail counts of grade touchpoints by
// activity kind.
type KindExamResult struct {
	Kind    string `json:"kind"`
	Pass    int    `json:"pass"`
	Average int    `json:"average"`
	Fail    int    `json:"fail"`
}

// TopPerformer is one ranked entry of the course leaderboard.
type TopPerformer struct {
	Rank                int     `json:"rank"`
	LearnerID           string  `json:"learnerId"`
	AveragePercentage   float64 `json:"averagePercentage"`
	CompletedActivities int     `json:"completedActivities"`
}

// SubjectAverage is the mean normalised percentage for one subject grouping.
// Learners with no grade in the subject are omitted from the denominator.
type SubjectAverage struct {
	Subject           string  `json:"subject"`
	AveragePercentage float64 `json:"averagePercentage"`
	GradedLearners    int     `json:"gradedLearners"`
}

// ActivityKindStats summarises submission and grading volume for one kind.
type ActivityKindStats struct {
	Total             int     `json:"total"`
	Submitted         int     `json:"submitted"`
	Graded            int     `json:"graded"`
	AveragePercentage float64 `json:"averagePercentage"`
}

// CourseStats carries the course-wide counters.
type CourseStats struct {
	TotalActivities     int `json:"totalActivities"`
	CompletedActivities int `json:"completedActivities"`
	StudentsWithGrades  int `json:"studentsWithGrades"`
}

// StudentMetricsBundle is the per-student analogue of the course bundle.
type StudentMetricsBundle struct {
	SnapshotID        string           `json:"snapshotId"`
	LearnerID         string           `json:"learnerId"`
	GeneratedAt       time.Time        `json:"generatedAt"`
	OverallPercentage float64          `json:"overallPercentage"`
	CompletionByKind  []KindCompletion `json:"completionByKind"`
	Courses           []CourseProgress `json:"courses"`
	HoursSpent        float64          `json:"hoursSpent"`
}

// KindCompletion breaks a learner's completion state down by activity kind.
type KindCompletion struct {
	Kind       string  `json:"kind"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"inProgress"`
	NotStarted int     `json:"notStarted"`
	Percentage float64 `json:"percentage"`
}

// CourseProgress is one row of the learner's course list.
type CourseProgress struct {
	CourseID            string  `json:"courseId"`
	Title               string  `json:"title"`
	TotalActivities     int     `json:"totalActivities"`
	CompletedActivities int     `json:"completedActivities"`
	ProgressPercentage  float64 `json:"progressPercentage"`
}
