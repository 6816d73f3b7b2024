package service

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

// inProgressDefaultPercent is reported when a partial-progress signal exists
// but carries no usable percentage, e.g. an assignment draft.
const inProgressDefaultPercent = 50.0

// CompletionResolver derives completion state for one (learner, activity)
// pair from whatever signals the host LMS recorded. It holds no state beyond
// its clock and is safe for concurrent use.
type CompletionResolver struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewCompletionResolver constructs a resolver.
func NewCompletionResolver(logger *zap.Logger) *CompletionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompletionResolver{logger: logger, now: time.Now}
}

// Resolve reconciles explicit completion flags with implicit signals. A nil
// signal means the LMS recorded nothing for the pair. Broken signal values
// degrade this single activity to not_started instead of failing the
// aggregation.
func (r *CompletionResolver) Resolve(activity models.ActivityRecord, learnerID string, signal *models.RawSignal) models.CompletionState {
	// Untracked activities never block progress metrics.
	if !activity.CompletionRequired {
		return models.CompletionState{Status: models.StatusCompleted, Percentage: 100}
	}

	state, degraded := r.resolveTracked(activity, learnerID, signal)
	if degraded {
		// A broken signal tells us nothing about the learner; the degraded
		// record stays not-overdue even past the due date.
		return state
	}
	state.IsOverdue = state.Status != models.StatusCompleted && r.pastDue(activity)
	return state
}

func (r *CompletionResolver) resolveTracked(activity models.ActivityRecord, learnerID string, signal *models.RawSignal) (models.CompletionState, bool) {
	if signal == nil {
		return models.CompletionState{Status: models.StatusNotStarted, Percentage: 0}, false
	}

	if signal.CompletedFlag.Valid && signal.CompletedFlag.Bool {
		return models.CompletionState{Status: models.StatusCompleted, Percentage: 100}, false
	}

	if activity.ViewRequired && signal.ViewedAt.Valid {
		return models.CompletionState{Status: models.StatusCompleted, Percentage: 100}, false
	}

	if signal.ProgressPercent.Valid {
		pct := signal.ProgressPercent.Float64
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			r.logger.Warn("unusable progress signal, degrading to not started",
				zap.String("activity_id", activity.ID),
				zap.String("learner_id", learnerID),
			)
			return models.CompletionState{Status: models.StatusNotStarted, Percentage: 0}, true
		}
		pct = clampPercent(pct)
		if pct >= 100 {
			return models.CompletionState{Status: models.StatusCompleted, Percentage: 100}, false
		}
		if pct > 0 {
			return models.CompletionState{Status: models.StatusInProgress, Percentage: pct}, false
		}
		return models.CompletionState{Status: models.StatusNotStarted, Percentage: 0}, false
	}

	if signal.SubmissionCount.Valid && signal.SubmissionCount.Int64 > 0 {
		return models.CompletionState{Status: models.StatusInProgress, Percentage: inProgressDefaultPercent}, false
	}

	return models.CompletionState{Status: models.StatusNotStarted, Percentage: 0}, false
}

func (r *CompletionResolver) pastDue(activity models.ActivityRecord) bool {
	return activity.DueAt != nil && activity.DueAt.Before(r.now())
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
