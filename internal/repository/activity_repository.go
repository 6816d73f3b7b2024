package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

// ActivityRepository reads native activity rows from the host LMS store. The
// store keeps one table per activity kind; the repository flattens them into a
// single raw feed and leaves interpretation of the kind-specific columns to
// the adapter.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository instantiates the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// kindSources maps each kind tag to the native table and its column layout.
// Kinds without a due/close column select NULL so every branch of the UNION
// has the same shape.
var kindSources = []struct {
	kind     string
	table    string
	dueCol   string
	closeCol string
}{
	{kind: "quiz", table: "lms_quizzes", dueCol: "NULL", closeCol: "time_close"},
	{kind: "assignment", table: "lms_assignments", dueCol: "due_date", closeCol: "cutoff_date"},
	{kind: "lesson", table: "lms_lessons", dueCol: "NULL", closeCol: "deadline"},
	{kind: "forum", table: "lms_forums", dueCol: "NULL", closeCol: "NULL"},
	{kind: "resource", table: "lms_resources", dueCol: "NULL", closeCol: "NULL"},
	{kind: "workshop", table: "lms_workshops", dueCol: "submission_end", closeCol: "NULL"},
}

// ListByCourse returns the raw activity feed for one course across every
// native table. Rows of unknown provenance (e.g. plugin tables synced into
// the feed view) come back with their original kind tag and are filtered
// later by the adapter.
func (r *ActivityRepository) ListByCourse(ctx context.Context, courseID string) ([]models.RawActivity, error) {
	var builder strings.Builder
	for i, src := range kindSources {
		if i > 0 {
			builder.WriteString(" UNION ALL ")
		}
		builder.WriteString(fmt.Sprintf(
			`SELECT id, course_id, '%s' AS kind, title, description, completion_tracked, view_required, %s AS due_at, %s AS close_at, subject_tag FROM %s WHERE course_id = $1 AND deleted_at IS NULL`,
			src.kind, src.dueCol, src.closeCol, src.table,
		))
	}
	builder.WriteString(" ORDER BY course_id, id")

	var activities []models.RawActivity
	if err := r.db.SelectContext(ctx, &activities, builder.String(), courseID); err != nil {
		return nil, fmt.Errorf("query course activities: %w", err)
	}
	return activities, nil
}
