package service

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

func trackedActivity() models.ActivityRecord {
	return models.ActivityRecord{
		ID:                 "act-1",
		CourseID:           "course-1",
		Kind:               models.KindAssignment,
		CompletionRequired: true,
	}
}

func TestResolverUntrackedActivityIsAlwaysComplete(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	activity := trackedActivity()
	activity.CompletionRequired = false

	state := resolver.Resolve(activity, "learner-1", nil)
	assert.Equal(t, models.StatusCompleted, state.Status)
	assert.Equal(t, 100.0, state.Percentage)
	assert.False(t, state.IsOverdue)
}

func TestResolverNoSignalMeansNotStarted(t *testing.T) {
	resolver := NewCompletionResolver(nil)

	state := resolver.Resolve(trackedActivity(), "learner-1", nil)
	assert.Equal(t, models.StatusNotStarted, state.Status)
	assert.Equal(t, 0.0, state.Percentage)
}

func TestResolverCompletedFlagWins(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	signal := &models.RawSignal{
		LearnerID:       "learner-1",
		CompletedFlag:   sql.NullBool{Bool: true, Valid: true},
		ProgressPercent: sql.NullFloat64{Float64: 10, Valid: true},
	}

	state := resolver.Resolve(trackedActivity(), "learner-1", signal)
	assert.Equal(t, models.StatusCompleted, state.Status)
	assert.Equal(t, 100.0, state.Percentage)
}

func TestResolverViewSatisfiesViewRequiredActivity(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	activity := trackedActivity()
	activity.ViewRequired = true
	signal := &models.RawSignal{
		LearnerID: "learner-1",
		ViewedAt:  sql.NullTime{Time: time.Now(), Valid: true},
	}

	state := resolver.Resolve(activity, "learner-1", signal)
	assert.Equal(t, models.StatusCompleted, state.Status)
}

func TestResolverProgressPercentLadder(t *testing.T) {
	resolver := NewCompletionResolver(nil)

	cases := []struct {
		name       string
		percent    float64
		wantStatus models.CompletionStatus
		wantPct    float64
	}{
		{"zero stays not started", 0, models.StatusNotStarted, 0},
		{"partial is in progress", 42.5, models.StatusInProgress, 42.5},
		{"full completes", 100, models.StatusCompleted, 100},
		{"overshoot clamps to complete", 180, models.StatusCompleted, 100},
		{"negative clamps to zero", -5, models.StatusNotStarted, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signal := &models.RawSignal{
				LearnerID:       "learner-1",
				ProgressPercent: sql.NullFloat64{Float64: tc.percent, Valid: true},
			}
			state := resolver.Resolve(trackedActivity(), "learner-1", signal)
			assert.Equal(t, tc.wantStatus, state.Status)
			assert.Equal(t, tc.wantPct, state.Percentage)
		})
	}
}

func TestResolverBrokenProgressDegradesToNotStarted(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	pastDue := trackedActivity()
	due := time.Now().Add(-48 * time.Hour)
	pastDue.DueAt = &due

	for _, broken := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		signal := &models.RawSignal{
			LearnerID:       "learner-1",
			ProgressPercent: sql.NullFloat64{Float64: broken, Valid: true},
		}
		state := resolver.Resolve(trackedActivity(), "learner-1", signal)
		assert.Equal(t, models.StatusNotStarted, state.Status)
		assert.Equal(t, 0.0, state.Percentage)

		// A broken signal degrades the record without marking it overdue,
		// even when the due date has passed.
		state = resolver.Resolve(pastDue, "learner-1", signal)
		assert.Equal(t, models.StatusNotStarted, state.Status)
		assert.False(t, state.IsOverdue)
	}
}

func TestResolverSubmissionWithoutProgressIsInProgress(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	signal := &models.RawSignal{
		LearnerID:       "learner-1",
		SubmissionCount: sql.NullInt64{Int64: 2, Valid: true},
	}

	state := resolver.Resolve(trackedActivity(), "learner-1", signal)
	assert.Equal(t, models.StatusInProgress, state.Status)
	assert.Equal(t, inProgressDefaultPercent, state.Percentage)
}

func TestResolverOverdueOnlyWhenIncompleteAndPastDue(t *testing.T) {
	resolver := NewCompletionResolver(nil)
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	activity := trackedActivity()
	activity.DueAt = &past
	state := resolver.Resolve(activity, "learner-1", nil)
	assert.True(t, state.IsOverdue)

	activity.DueAt = &future
	state = resolver.Resolve(activity, "learner-1", nil)
	assert.False(t, state.IsOverdue)

	activity.DueAt = &past
	completed := &models.RawSignal{
		LearnerID:     "learner-1",
		CompletedFlag: sql.NullBool{Bool: true, Valid: true},
	}
	state = resolver.Resolve(activity, "learner-1", completed)
	assert.False(t, state.IsOverdue)
}
