package models

import (
	"database/sql"
	"time"
)

// ActivityKind enumerates the recognised activity types. The set is closed:
// records tagged with anything else are dropped during normalisation.
type ActivityKind string

const (
	KindQuiz       ActivityKind = "quiz"
	KindAssignment ActivityKind = "assignment"
	KindLesson     ActivityKind = "lesson"
	KindForum      ActivityKind = "forum"
	KindResource   ActivityKind = "resource"
	KindWorkshop   ActivityKind = "workshop"
)

// ActivityKinds lists every recognised kind in a stable order.
func ActivityKinds() []ActivityKind {
	return []ActivityKind{KindQuiz, KindAssignment, KindLesson, KindForum, KindResource, KindWorkshop}
}

// Valid reports whether the kind belongs to the closed enumeration.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindQuiz, KindAssignment, KindLesson, KindForum, KindResource, KindWorkshop:
		return true
	}
	return false
}

// RawActivity is one native activity row as the host LMS stores it. Each kind
// populates a different subset of the optional columns; the adapter decides
// which ones matter.
type RawActivity struct {
	ID                string         `db:"id"`
	CourseID          string         `db:"course_id"`
	Kind              string         `db:"kind"`
	Title             sql.NullString `db:"title"`
	Description       sql.NullString `db:"description"`
	CompletionTracked sql.NullBool   `db:"completion_tracked"`
	ViewRequired      sql.NullBool   `db:"view_required"`
	DueAt             sql.NullTime   `db:"due_at"`
	CloseAt           sql.NullTime   `db:"close_at"`
	SubjectTag        sql.NullString `db:"subject_tag"`
}

// ActivityRecord is the normalised shape every aggregate works with.
type ActivityRecord struct {
	ID                 string
	CourseID           string
	Kind               ActivityKind
	Title              string
	Description        string
	CompletionRequired bool
	ViewRequired       bool
	DueAt              *time.Time
	Subject            string
}

// CourseRef identifies a course a learner is enrolled in.
type CourseRef struct {
	ID    string `db:"id"`
	Title string `db:"title"`
}
