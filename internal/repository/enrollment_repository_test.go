package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEnrollmentRepositoryListLearnerIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"learner_id"}).
		AddRow("learner-1").
		AddRow("learner-2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT learner_id FROM enrollments WHERE course_id = $1 AND status = 'active' ORDER BY learner_id")).
		WithArgs("course-1").
		WillReturnRows(rows)

	learners, err := repo.ListLearnerIDs(context.Background(), "course-1")
	require.NoError(t, err)
	require.Equal(t, []string{"learner-1", "learner-2"}, learners)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListLearnerIDsError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT learner_id FROM enrollments").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListLearnerIDs(context.Background(), "course-1")
	require.Error(t, err)
}

func TestEnrollmentRepositoryListCoursesForLearner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title"}).
		AddRow("course-1", "Algebra").
		AddRow("course-2", "Biology")
	mock.ExpectQuery("SELECT c.id, c.title FROM courses c").
		WithArgs("learner-1").
		WillReturnRows(rows)

	courses, err := repo.ListCoursesForLearner(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "Algebra", courses[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}
