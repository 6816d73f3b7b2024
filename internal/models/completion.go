package models

import "database/sql"

// CompletionStatus is the tri-state completion outcome per (learner, activity).
type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusInProgress CompletionStatus = "in_progress"
	StatusCompleted  CompletionStatus = "completed"
)

// CompletionState is recomputed fresh on every aggregation request; it is
// never persisted by the engine.
type CompletionState struct {
	Status     CompletionStatus
	Percentage float64
	IsOverdue  bool
}

// RawSignal carries the completion and grade evidence the host LMS records
// for one (learner, activity) pair, or for a course-level grade touchpoint
// when ActivityID is null.
type RawSignal struct {
	LearnerID       string          `db:"learner_id"`
	CourseID        string          `db:"course_id"`
	ActivityID      sql.NullString  `db:"activity_id"`
	CompletedFlag   sql.NullBool    `db:"completed"`
	ViewedAt        sql.NullTime    `db:"viewed_at"`
	ProgressPercent sql.NullFloat64 `db:"progress_percent"`
	SubmissionCount sql.NullInt64   `db:"submission_count"`
	RawScore        sql.NullFloat64 `db:"raw_score"`
	MaxScore        sql.NullFloat64 `db:"max_score"`
	LastAccessAt    sql.NullTime    `db:"last_access_at"`
}
