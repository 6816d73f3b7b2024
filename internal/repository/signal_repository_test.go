package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var signalColumnNames = []string{
	"learner_id", "course_id", "activity_id", "completed", "viewed_at",
	"progress_percent", "submission_count", "raw_score", "max_score", "last_access_at",
}

func TestSignalRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSignalRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(signalColumnNames).
		AddRow("learner-1", "course-1", "quiz-1", true, now, 100.0, 1, 90.0, 100.0, now).
		AddRow("learner-2", "course-1", nil, nil, nil, nil, nil, 40.0, 100.0, nil)
	mock.ExpectQuery("FROM activity_signals s WHERE s.course_id").
		WithArgs("course-1").
		WillReturnRows(rows)

	signals, err := repo.ListByCourse(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, signals, 2)
	require.True(t, signals[0].ActivityID.Valid)
	require.False(t, signals[1].ActivityID.Valid)
	require.True(t, signals[1].RawScore.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignalRepositoryListByLearner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSignalRepository(db)

	rows := sqlmock.NewRows(signalColumnNames).
		AddRow("learner-1", "course-2", "assign-1", nil, nil, 35.0, nil, nil, nil, nil)
	mock.ExpectQuery("FROM activity_signals s WHERE s.learner_id").
		WithArgs("learner-1").
		WillReturnRows(rows)

	signals, err := repo.ListByLearner(context.Background(), "learner-1")
	require.NoError(t, err)
	require.Len(t, signals, 1)
	require.Equal(t, "course-2", signals[0].CourseID)
	require.Equal(t, 35.0, signals[0].ProgressPercent.Float64)
	require.NoError(t, mock.ExpectationsWereMet())
}
