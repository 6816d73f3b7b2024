package service

import (
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-insight-api/internal/models"
)

func TestBucketerBandBoundaries(t *testing.T) {
	bucketer := NewGradeBucketer()

	cases := []struct {
		raw, max float64
		want     models.GradeBand
	}{
		{70, 100, models.BandPass},
		{69.9, 100, models.BandAverage},
		{50, 100, models.BandAverage},
		{49.9, 100, models.BandFail},
		{0, 100, models.BandFail},
		{100, 100, models.BandPass},
	}
	for _, tc := range cases {
		record, ok := bucketer.Bucket(tc.raw, tc.max)
		require.True(t, ok)
		assert.Equal(t, tc.want, record.Band, "raw=%v max=%v", tc.raw, tc.max)
	}
}

func TestBucketerNormalisesToPercentage(t *testing.T) {
	bucketer := NewGradeBucketer()

	record, ok := bucketer.Bucket(15, 20)
	require.True(t, ok)
	assert.Equal(t, 75.0, record.Percentage)
	assert.Equal(t, models.BandPass, record.Band)
}

func TestBucketerExcludesUnusableMaxScores(t *testing.T) {
	bucketer := NewGradeBucketer()

	for _, max := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, ok := bucketer.Bucket(50, max)
		assert.False(t, ok, "max=%v must be excluded", max)
	}
	_, ok := bucketer.Bucket(math.NaN(), 100)
	assert.False(t, ok)
}

func TestBucketerClampsOutOfRangeScores(t *testing.T) {
	bucketer := NewGradeBucketer()

	record, ok := bucketer.Bucket(150, 100)
	require.True(t, ok)
	assert.Equal(t, 100.0, record.Percentage)

	record, ok = bucketer.Bucket(-20, 100)
	require.True(t, ok)
	assert.Equal(t, 0.0, record.Percentage)
	assert.Equal(t, models.BandFail, record.Band)
}

func TestBucketSignalRequiresBothScores(t *testing.T) {
	bucketer := NewGradeBucketer()

	_, ok := bucketer.BucketSignal(models.RawSignal{
		LearnerID: "learner-1",
		RawScore:  sql.NullFloat64{Float64: 80, Valid: true},
	})
	assert.False(t, ok)

	record, ok := bucketer.BucketSignal(models.RawSignal{
		LearnerID:  "learner-1",
		ActivityID: sql.NullString{String: "act-1", Valid: true},
		RawScore:   sql.NullFloat64{Float64: 80, Valid: true},
		MaxScore:   sql.NullFloat64{Float64: 100, Valid: true},
	})
	require.True(t, ok)
	assert.Equal(t, "learner-1", record.LearnerID)
	assert.Equal(t, "act-1", record.ActivityID)
	assert.Equal(t, models.BandPass, record.Band)
}
