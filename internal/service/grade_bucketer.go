package service

import (
	"math"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

// GradeBucketer normalises raw scores onto a 0-100 scale and assigns the
// performance band. It is a pure function holder with no dependencies.
type GradeBucketer struct{}

// NewGradeBucketer constructs a bucketer.
func NewGradeBucketer() *GradeBucketer {
	return &GradeBucketer{}
}

// Bucket maps a raw score to a GradeRecord carrying the clamped percentage
// and band. The boolean is false when the grade must be excluded from every
// grade-based aggregate: zero, negative or non-finite max score guards the
// division, and such grades are never counted as zero.
func (b *GradeBucketer) Bucket(rawScore, maxScore float64) (models.GradeRecord, bool) {
	if maxScore <= 0 || math.IsNaN(maxScore) || math.IsInf(maxScore, 0) || math.IsNaN(rawScore) || math.IsInf(rawScore, 0) {
		return models.GradeRecord{}, false
	}

	percentage := clampPercent(rawScore / maxScore * 100)
	return models.GradeRecord{
		RawScore:   rawScore,
		MaxScore:   maxScore,
		Percentage: percentage,
		Band:       models.BandFor(percentage),
	}, true
}

// BucketSignal buckets the grade carried by one signal row. Signals without
// both scores present are excluded, matching the source-record contract.
func (b *GradeBucketer) BucketSignal(signal models.RawSignal) (models.GradeRecord, bool) {
	if !signal.RawScore.Valid || !signal.MaxScore.Valid {
		return models.GradeRecord{}, false
	}
	record, ok := b.Bucket(signal.RawScore.Float64, signal.MaxScore.Float64)
	if !ok {
		return models.GradeRecord{}, false
	}
	record.LearnerID = signal.LearnerID
	if signal.ActivityID.Valid {
		record.ActivityID = signal.ActivityID.String
	}
	return record, true
}
