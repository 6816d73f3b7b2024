package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

// EnrollmentRepository reads enrollment data from the host LMS store.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListLearnerIDs returns every learner actively enrolled in the course, in a
// deterministic order.
func (r *EnrollmentRepository) ListLearnerIDs(ctx context.Context, courseID string) ([]string, error) {
	const query = `SELECT learner_id FROM enrollments WHERE course_id = $1 AND status = 'active' ORDER BY learner_id`

	var learnerIDs []string
	if err := r.db.SelectContext(ctx, &learnerIDs, query, courseID); err != nil {
		return nil, fmt.Errorf("query enrolled learners: %w", err)
	}
	return learnerIDs, nil
}

// ListCoursesForLearner returns the courses a learner is actively enrolled in.
func (r *EnrollmentRepository) ListCoursesForLearner(ctx context.Context, learnerID string) ([]models.CourseRef, error) {
	const query = `SELECT c.id, c.title FROM courses c
        JOIN enrollments e ON e.course_id = c.id
        WHERE e.learner_id = $1 AND e.status = 'active'
        ORDER BY c.id`

	var courses []models.CourseRef
	if err := r.db.SelectContext(ctx, &courses, query, learnerID); err != nil {
		return nil, fmt.Errorf("query learner courses: %w", err)
	}
	return courses, nil
}
