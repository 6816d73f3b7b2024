package service

import (
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-insight-api/internal/models"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
)

// normalizeFunc turns one native row of a known kind into the common record
// shape. It only runs after identity and kind checks have passed.
type normalizeFunc func(raw models.RawActivity) models.ActivityRecord

// ActivityAdapter absorbs the heterogeneity of the per-kind LMS tables.
// Adding a kind means registering one entry here; aggregation logic never
// switches on kind-specific columns.
type ActivityAdapter struct {
	logger   *zap.Logger
	registry map[models.ActivityKind]normalizeFunc
}

// NewActivityAdapter constructs the adapter with every recognised kind
// registered.
func NewActivityAdapter(logger *zap.Logger) *ActivityAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &ActivityAdapter{logger: logger}
	a.registry = map[models.ActivityKind]normalizeFunc{
		models.KindQuiz:       a.normalizeQuiz,
		models.KindAssignment: a.normalizeAssignment,
		models.KindLesson:     a.normalizeLesson,
		models.KindForum:      a.normalizeForum,
		models.KindResource:   a.normalizeResource,
		models.KindWorkshop:   a.normalizeWorkshop,
	}
	return a
}

// Normalize converts one native record into an ActivityRecord. The boolean is
// false when the record must be dropped: unrecognised kind or missing
// identity. Dropped records are logged and excluded from every aggregate,
// never counted as zero.
func (a *ActivityAdapter) Normalize(raw models.RawActivity) (*models.ActivityRecord, bool) {
	if raw.ID == "" || raw.CourseID == "" {
		a.logger.Warn("dropping activity without identity",
			zap.String("id", raw.ID),
			zap.String("course_id", raw.CourseID),
			zap.String("kind", raw.Kind),
			zap.Error(appErrors.ErrMalformedRecord),
		)
		return nil, false
	}

	kind := models.ActivityKind(strings.ToLower(strings.TrimSpace(raw.Kind)))
	normalize, ok := a.registry[kind]
	if !ok || !kind.Valid() {
		a.logger.Warn("dropping activity of unrecognised kind",
			zap.String("id", raw.ID),
			zap.String("course_id", raw.CourseID),
			zap.String("kind", raw.Kind),
			zap.Error(appErrors.ErrMalformedRecord),
		)
		return nil, false
	}

	record := normalize(raw)
	return &record, true
}

func (a *ActivityAdapter) normalizeQuiz(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindQuiz)
	record.CompletionRequired = boolOr(raw.CompletionTracked, true)
	record.ViewRequired = boolOr(raw.ViewRequired, false)
	record.DueAt = timeOrNil(raw.CloseAt)
	return record
}

func (a *ActivityAdapter) normalizeAssignment(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindAssignment)
	record.CompletionRequired = boolOr(raw.CompletionTracked, true)
	record.ViewRequired = boolOr(raw.ViewRequired, false)
	record.DueAt = timeOrNil(raw.DueAt)
	if record.DueAt == nil {
		record.DueAt = timeOrNil(raw.CloseAt)
	}
	return record
}

func (a *ActivityAdapter) normalizeLesson(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindLesson)
	record.CompletionRequired = boolOr(raw.CompletionTracked, true)
	record.ViewRequired = boolOr(raw.ViewRequired, true)
	record.DueAt = timeOrNil(raw.CloseAt)
	return record
}

func (a *ActivityAdapter) normalizeForum(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindForum)
	record.CompletionRequired = boolOr(raw.CompletionTracked, false)
	record.ViewRequired = boolOr(raw.ViewRequired, true)
	return record
}

func (a *ActivityAdapter) normalizeResource(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindResource)
	record.CompletionRequired = boolOr(raw.CompletionTracked, false)
	record.ViewRequired = boolOr(raw.ViewRequired, true)
	return record
}

func (a *ActivityAdapter) normalizeWorkshop(raw models.RawActivity) models.ActivityRecord {
	record := a.base(raw, models.KindWorkshop)
	record.CompletionRequired = boolOr(raw.CompletionTracked, true)
	record.ViewRequired = boolOr(raw.ViewRequired, false)
	record.DueAt = timeOrNil(raw.DueAt)
	return record
}

// base fills the fields every kind shares. Optional text columns become empty
// strings, never an error.
func (a *ActivityAdapter) base(raw models.RawActivity, kind models.ActivityKind) models.ActivityRecord {
	subject := strings.TrimSpace(stringOr(raw.SubjectTag, ""))
	if subject == "" {
		subject = string(kind)
	}
	return models.ActivityRecord{
		ID:          raw.ID,
		CourseID:    raw.CourseID,
		Kind:        kind,
		Title:       stringOr(raw.Title, ""),
		Description: stringOr(raw.Description, ""),
		Subject:     subject,
	}
}

func stringOr(v sql.NullString, fallback string) string {
	if v.Valid {
		return v.String
	}
	return fallback
}

func timeOrNil(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func boolOr(v sql.NullBool, fallback bool) bool {
	if v.Valid {
		return v.Bool
	}
	return fallback
}
