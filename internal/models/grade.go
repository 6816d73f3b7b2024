package models

// GradeBand is the normalised performance category derived from a percentage.
type GradeBand string

const (
	BandPass    GradeBand = "Pass"
	BandAverage GradeBand = "Average"
	BandFail    GradeBand = "Fail"
)

// Band thresholds, inclusive at the lower bound. Declared once so tuning the
// cut-offs never touches aggregation logic.
const (
	PassThreshold    = 70.0
	AverageThreshold = 50.0
)

// BandFor maps a normalised percentage onto its band.
func BandFor(percentage float64) GradeBand {
	switch {
	case percentage >= PassThreshold:
		return BandPass
	case percentage >= AverageThreshold:
		return BandAverage
	default:
		return BandFail
	}
}

// GradeRecord is one bucketed grade touchpoint. Records with a zero or absent
// max score never become GradeRecords; they are excluded from every
// grade-based aggregate rather than counted as zero.
type GradeRecord struct {
	LearnerID  string
	ActivityID string
	Kind       ActivityKind
	RawScore   float64
	MaxScore   float64
	Percentage float64
	Band       GradeBand
}
