package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

func TestActivityAdapterDropsRecordWithoutIdentity(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	_, ok := adapter.Normalize(models.RawActivity{CourseID: "course-1", Kind: "quiz"})
	assert.False(t, ok)

	_, ok = adapter.Normalize(models.RawActivity{ID: "act-1", Kind: "quiz"})
	assert.False(t, ok)
}

func TestActivityAdapterDropsUnrecognisedKind(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	_, ok := adapter.Normalize(models.RawActivity{ID: "act-1", CourseID: "course-1", Kind: "scorm"})
	assert.False(t, ok)
}

func TestActivityAdapterNormalizesKindCaseInsensitively(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	record, ok := adapter.Normalize(models.RawActivity{ID: "act-1", CourseID: "course-1", Kind: " Quiz "})
	require.True(t, ok)
	assert.Equal(t, models.KindQuiz, record.Kind)
}

func TestActivityAdapterQuizDefaults(t *testing.T) {
	adapter := NewActivityAdapter(nil)
	closeAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	record, ok := adapter.Normalize(models.RawActivity{
		ID:       "quiz-1",
		CourseID: "course-1",
		Kind:     "quiz",
		Title:    sql.NullString{String: "Algebra Quiz", Valid: true},
		CloseAt:  sql.NullTime{Time: closeAt, Valid: true},
	})
	require.True(t, ok)
	assert.True(t, record.CompletionRequired)
	assert.False(t, record.ViewRequired)
	require.NotNil(t, record.DueAt)
	assert.Equal(t, closeAt, *record.DueAt)
	assert.Equal(t, "Algebra Quiz", record.Title)
}

func TestActivityAdapterAssignmentDueDateFallsBackToCutoff(t *testing.T) {
	adapter := NewActivityAdapter(nil)
	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	record, ok := adapter.Normalize(models.RawActivity{
		ID:       "assign-1",
		CourseID: "course-1",
		Kind:     "assignment",
		CloseAt:  sql.NullTime{Time: cutoff, Valid: true},
	})
	require.True(t, ok)
	require.NotNil(t, record.DueAt)
	assert.Equal(t, cutoff, *record.DueAt)
}

func TestActivityAdapterForumIsUntrackedByDefault(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	record, ok := adapter.Normalize(models.RawActivity{ID: "forum-1", CourseID: "course-1", Kind: "forum"})
	require.True(t, ok)
	assert.False(t, record.CompletionRequired)
	assert.True(t, record.ViewRequired)
	assert.Nil(t, record.DueAt)
}

func TestActivityAdapterSubjectFallsBackToKind(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	record, ok := adapter.Normalize(models.RawActivity{ID: "res-1", CourseID: "course-1", Kind: "resource"})
	require.True(t, ok)
	assert.Equal(t, "resource", record.Subject)

	record, ok = adapter.Normalize(models.RawActivity{
		ID:         "res-2",
		CourseID:   "course-1",
		Kind:       "resource",
		SubjectTag: sql.NullString{String: " Mathematics ", Valid: true},
	})
	require.True(t, ok)
	assert.Equal(t, "Mathematics", record.Subject)
}

func TestActivityAdapterMissingOptionalFieldsBecomeEmpty(t *testing.T) {
	adapter := NewActivityAdapter(nil)

	record, ok := adapter.Normalize(models.RawActivity{ID: "lesson-1", CourseID: "course-1", Kind: "lesson"})
	require.True(t, ok)
	assert.Equal(t, "", record.Title)
	assert.Equal(t, "", record.Description)
	assert.True(t, record.ViewRequired)
}
