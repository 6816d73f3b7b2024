package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

// SignalRepository reads completion and grade signals from the host LMS
// store. One row per (learner, activity) touchpoint; course-level grade
// touchpoints carry a NULL activity_id.
type SignalRepository struct {
	db *sqlx.DB
}

// NewSignalRepository instantiates the repository.
func NewSignalRepository(db *sqlx.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

const signalColumns = `s.learner_id, s.course_id, s.activity_id, s.completed, s.viewed_at, s.progress_percent, s.submission_count, s.raw_score, s.max_score, s.last_access_at`

// ListByCourse returns every signal recorded for the course.
func (r *SignalRepository) ListByCourse(ctx context.Context, courseID string) ([]models.RawSignal, error) {
	return r.list(ctx, "s.course_id", courseID)
}

// ListByLearner returns every signal recorded for the learner across courses.
func (r *SignalRepository) ListByLearner(ctx context.Context, learnerID string) ([]models.RawSignal, error) {
	return r.list(ctx, "s.learner_id", learnerID)
}

func (r *SignalRepository) list(ctx context.Context, column, value string) ([]models.RawSignal, error) {
	var builder strings.Builder
	builder.WriteString("SELECT ")
	builder.WriteString(signalColumns)
	builder.WriteString(" FROM activity_signals s WHERE ")
	builder.WriteString(column)
	builder.WriteString(" = $1 ORDER BY s.learner_id, s.activity_id")

	var signals []models.RawSignal
	if err := r.db.SelectContext(ctx, &signals, builder.String(), value); err != nil {
		return nil, fmt.Errorf("query activity signals by %s: %w", column, err)
	}
	return signals, nil
}
