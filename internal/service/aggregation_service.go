package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/lms-insight-api/internal/dto"
	"github.com/noah-isme/lms-insight-api/internal/models"
	appErrors "github.com/noah-isme/lms-insight-api/pkg/errors"
)

type enrollmentReader interface {
	ListLearnerIDs(ctx context.Context, courseID string) ([]string, error)
	ListCoursesForLearner(ctx context.Context, learnerID string) ([]models.CourseRef, error)
}

type activityReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.RawActivity, error)
}

type signalReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.RawSignal, error)
	ListByLearner(ctx context.Context, learnerID string) ([]models.RawSignal, error)
}

// AggregationConfig tunes the engine.
type AggregationConfig struct {
	FetchTimeout       time.Duration
	AttendanceWindow   time.Duration
	TopPerformerLimit  int
	HoursPerCompletion float64
}

// AggregationService orchestrates the read/aggregate pipeline: it pulls
// enrollment, activity and signal data through the adapter, resolver and
// bucketer, and assembles fully-shaped metric bundles. It holds no
// cross-request state; every bundle is recomputed from the current store.
type AggregationService struct {
	enrollments enrollmentReader
	activities  activityReader
	signals     signalReader
	adapter     *ActivityAdapter
	resolver    *CompletionResolver
	bucketer    *GradeBucketer
	fallback    *FallbackProvider
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	cfg         AggregationConfig
}

// AggregationServiceParams groups constructor dependencies.
type AggregationServiceParams struct {
	Enrollments enrollmentReader
	Activities  activityReader
	Signals     signalReader
	Adapter     *ActivityAdapter
	Resolver    *CompletionResolver
	Bucketer    *GradeBucketer
	Fallback    *FallbackProvider
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	Config      AggregationConfig
}

// NewAggregationService constructs an AggregationService with sane defaults.
func NewAggregationService(params AggregationServiceParams) *AggregationService {
	cfg := params.Config
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.AttendanceWindow <= 0 {
		cfg.AttendanceWindow = 30 * 24 * time.Hour
	}
	if cfg.TopPerformerLimit <= 0 {
		cfg.TopPerformerLimit = 10
	}
	if cfg.HoursPerCompletion <= 0 {
		cfg.HoursPerCompletion = 1.5
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	adapter := params.Adapter
	if adapter == nil {
		adapter = NewActivityAdapter(logger)
	}
	resolver := params.Resolver
	if resolver == nil {
		resolver = NewCompletionResolver(logger)
	}
	bucketer := params.Bucketer
	if bucketer == nil {
		bucketer = NewGradeBucketer()
	}
	fallback := params.Fallback
	if fallback == nil {
		fallback = NewFallbackProvider()
	}
	return &AggregationService{
		enrollments: params.Enrollments,
		activities:  params.Activities,
		signals:     params.Signals,
		adapter:     adapter,
		resolver:    resolver,
		bucketer:    bucketer,
		fallback:    fallback,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
		cfg:         cfg,
	}
}

// AggregateCourse builds the course metrics bundle. The boolean indicates
// whether the bundle was served from cache. Recoverable upstream conditions
// never surface as errors; the affected metrics fall back to their defaults.
func (s *AggregationService) AggregateCourse(ctx context.Context, courseID string) (*dto.CourseMetricsBundle, bool, error) {
	if courseID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "courseId is required")
	}

	cacheKey := fmt.Sprintf("bundle:course:%s", courseID)
	if s.cache != nil {
		var cached dto.CourseMetricsBundle
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	bundle := s.composeCourseBundle(ctx, courseID)
	if s.metrics != nil {
		s.metrics.ObserveAggregation("course", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, bundle, 0); err != nil {
			s.logger.Warn("cache course bundle", zap.Error(err))
		}
	}
	return bundle, false, nil
}

// AggregateStudent builds the per-student metrics bundle across all of the
// learner's active courses.
func (s *AggregationService) AggregateStudent(ctx context.Context, learnerID string) (*dto.StudentMetricsBundle, bool, error) {
	if learnerID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "learnerId is required")
	}

	cacheKey := fmt.Sprintf("bundle:student:%s", learnerID)
	if s.cache != nil {
		var cached dto.StudentMetricsBundle
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	bundle := s.composeStudentBundle(ctx, learnerID)
	if s.metrics != nil {
		s.metrics.ObserveAggregation("student", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, bundle, 0); err != nil {
			s.logger.Warn("cache student bundle", zap.Error(err))
		}
	}
	return bundle, false, nil
}

type signalKey struct {
	learnerID  string
	activityID string
}

func (s *AggregationService) composeCourseBundle(ctx context.Context, courseID string) *dto.CourseMetricsBundle {
	generatedAt := s.now().UTC()
	snapshotID := s.newID()

	learners, err := s.fetchLearners(ctx, courseID)
	if err != nil {
		s.logger.Warn("enrollment fetch failed, serving default bundle",
			zap.String("course_id", courseID), zap.Error(err))
		bundle := s.fallback.EmptyCourseBundle(snapshotID, courseID, generatedAt)
		return &bundle
	}
	if len(learners) == 0 {
		bundle := s.fallback.EmptyCourseBundle(snapshotID, courseID, generatedAt)
		return &bundle
	}

	var (
		rawActivities []models.RawActivity
		signals       []models.RawSignal
		actErr        error
		sigErr        error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rawActivities, actErr = s.fetchActivities(gctx, courseID)
		return nil
	})
	g.Go(func() error {
		signals, sigErr = s.fetchCourseSignals(gctx, courseID)
		return nil
	})
	_ = g.Wait()

	bundle := s.fallback.EmptyCourseBundle(snapshotID, courseID, generatedAt)
	bundle.StudentCount = len(learners)

	activities := s.normalizeActivities(rawActivities, actErr, courseID)
	bundle.CourseStats.TotalActivities = len(activities)

	enrolled := make(map[string]struct{}, len(learners))
	for _, id := range learners {
		enrolled[id] = struct{}{}
	}

	signalIndex, lastSeen := s.indexSignals(signals, sigErr, enrolled, courseID)

	// Completion pass. Counts completions per (learner, activity) pair, so
	// completed_activities can exceed the activity count.
	completedByLearner := make(map[string]int, len(learners))
	totalCompleted := 0
	for _, learnerID := range learners {
		for _, act := range activities {
			sig := signalIndex[signalKey{learnerID: learnerID, activityID: act.ID}]
			state := s.resolver.Resolve(act, learnerID, sig)
			if state.Status == models.StatusCompleted {
				completedByLearner[learnerID]++
				totalCompleted++
			}
		}
	}
	bundle.CourseStats.CompletedActivities = totalCompleted

	gradesByLearner := s.bucketCourseGrades(signals, sigErr, enrolled, activities)

	s.buildLearnerAggregates(&bundle, learners, gradesByLearner, completedByLearner)
	s.buildKindAggregates(&bundle, activities, signals, sigErr, enrolled, gradesByLearner)
	bundle.AttendanceRate = s.attendanceRate(learners, lastSeen, generatedAt)

	return &bundle
}

func (s *AggregationService) normalizeActivities(raw []models.RawActivity, fetchErr error, courseID string) []models.ActivityRecord {
	if fetchErr != nil {
		s.logger.Warn("activity fetch failed, activity metrics fall back to defaults",
			zap.String("course_id", courseID), zap.Error(fetchErr))
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	activities := make([]models.ActivityRecord, 0, len(raw))
	for _, r := range raw {
		record, ok := s.adapter.Normalize(r)
		if !ok {
			if s.metrics != nil {
				s.metrics.RecordDroppedRecord("activity")
			}
			continue
		}
		key := record.CourseID + "/" + record.ID
		if _, dup := seen[key]; dup {
			s.logger.Warn("dropping duplicate activity", zap.String("activity_id", record.ID), zap.String("course_id", record.CourseID))
			continue
		}
		seen[key] = struct{}{}
		activities = append(activities, *record)
	}
	return activities
}

func (s *AggregationService) indexSignals(signals []models.RawSignal, fetchErr error, enrolled map[string]struct{}, courseID string) (map[signalKey]*models.RawSignal, map[string]time.Time) {
	index := make(map[signalKey]*models.RawSignal)
	lastSeen := make(map[string]time.Time)
	if fetchErr != nil {
		s.logger.Warn("signal fetch failed, completion and grade metrics fall back to defaults",
			zap.String("course_id", courseID), zap.Error(fetchErr))
		return index, lastSeen
	}
	for i := range signals {
		sig := &signals[i]
		if _, ok := enrolled[sig.LearnerID]; !ok {
			continue
		}
		if sig.ActivityID.Valid {
			index[signalKey{learnerID: sig.LearnerID, activityID: sig.ActivityID.String}] = sig
		}
		if touch, ok := latestTouch(sig); ok {
			if current, exists := lastSeen[sig.LearnerID]; !exists || touch.After(current) {
				lastSeen[sig.LearnerID] = touch
			}
		}
	}
	return index, lastSeen
}

// bucketCourseGrades converts signal rows into bucketed grade records grouped
// by learner. Activity-level touchpoints referencing unknown activities are
// excluded entirely so dropped records never leak into grade aggregates.
func (s *AggregationService) bucketCourseGrades(signals []models.RawSignal, fetchErr error, enrolled map[string]struct{}, activities []models.ActivityRecord) map[string][]models.GradeRecord {
	grades := make(map[string][]models.GradeRecord)
	if fetchErr != nil {
		return grades
	}

	kindByActivity := make(map[string]models.ActivityKind, len(activities))
	for _, act := range activities {
		kindByActivity[act.ID] = act.Kind
	}

	for _, sig := range signals {
		if _, ok := enrolled[sig.LearnerID]; !ok {
			continue
		}
		record, ok := s.bucketer.BucketSignal(sig)
		if !ok {
			continue
		}
		if record.ActivityID != "" {
			kind, known := kindByActivity[record.ActivityID]
			if !known {
				continue
			}
			record.Kind = kind
		}
		grades[record.LearnerID] = append(grades[record.LearnerID], record)
	}
	return grades
}

// buildLearnerAggregates fills grade_distribution, top_performers and
// students_with_grades. Each graded learner contributes to exactly one band,
// derived from the course-level average.
func (s *AggregationService) buildLearnerAggregates(bundle *dto.CourseMetricsBundle, learners []string, gradesByLearner map[string][]models.GradeRecord, completedByLearner map[string]int) {
	type performer struct {
		learnerID string
		average   float64
		completed int
	}

	bandCounts := make(map[models.GradeBand]int)
	performers := make([]performer, 0, len(gradesByLearner))
	for _, learnerID := range learners {
		grades := gradesByLearner[learnerID]
		if len(grades) == 0 {
			continue
		}
		average := meanPercentage(grades)
		bandCounts[models.BandFor(average)]++
		performers = append(performers, performer{
			learnerID: learnerID,
			average:   average,
			completed: completedByLearner[learnerID],
		})
	}

	bundle.CourseStats.StudentsWithGrades = len(performers)

	for _, band := range []models.GradeBand{models.BandPass, models.BandAverage, models.BandFail} {
		if count := bandCounts[band]; count > 0 {
			bundle.GradeDistribution = append(bundle.GradeDistribution, dto.BandBucket{
				Band:         string(band),
				StudentCount: count,
			})
		}
	}

	sort.Slice(performers, func(i, j int) bool {
		if performers[i].average != performers[j].average {
			return performers[i].average > performers[j].average
		}
		if performers[i].completed != performers[j].completed {
			return performers[i].completed > performers[j].completed
		}
		return performers[i].learnerID < performers[j].learnerID
	})

	limit := s.cfg.TopPerformerLimit
	if limit > len(performers) {
		limit = len(performers)
	}
	for i := 0; i < limit; i++ {
		bundle.TopPerformers = append(bundle.TopPerformers, dto.TopPerformer{
			Rank:                i + 1,
			LearnerID:           performers[i].learnerID,
			AveragePercentage:   roundTo1(performers[i].average),
			CompletedActivities: performers[i].completed,
		})
	}
}

// buildKindAggregates fills exam_results, subject_averages and the per-kind
// assignment/quiz stats from activity-level grade touchpoints.
func (s *AggregationService) buildKindAggregates(bundle *dto.CourseMetricsBundle, activities []models.ActivityRecord, signals []models.RawSignal, sigErr error, enrolled map[string]struct{}, gradesByLearner map[string][]models.GradeRecord) {
	subjectByActivity := make(map[string]string, len(activities))
	kindTotals := make(map[models.ActivityKind]int)
	for _, act := range activities {
		subjectByActivity[act.ID] = act.Subject
		kindTotals[act.Kind]++
	}

	type bandTally struct{ pass, average, fail int }
	type subjectTally struct {
		sum      float64
		count    int
		learners map[string]struct{}
	}

	examTallies := make(map[models.ActivityKind]*bandTally)
	kindGrades := make(map[models.ActivityKind]*kindTally)
	subjects := make(map[string]*subjectTally)

	for _, grades := range gradesByLearner {
		for _, record := range grades {
			if record.ActivityID == "" || record.Kind == "" {
				continue
			}

			tally := examTallies[record.Kind]
			if tally == nil {
				tally = &bandTally{}
				examTallies[record.Kind] = tally
			}
			switch record.Band {
			case models.BandPass:
				tally.pass++
			case models.BandAverage:
				tally.average++
			default:
				tally.fail++
			}

			kg := kindGrades[record.Kind]
			if kg == nil {
				kg = &kindTally{}
				kindGrades[record.Kind] = kg
			}
			kg.graded++
			kg.sum += record.Percentage

			subject := subjectByActivity[record.ActivityID]
			st := subjects[subject]
			if st == nil {
				st = &subjectTally{learners: make(map[string]struct{})}
				subjects[subject] = st
			}
			st.sum += record.Percentage
			st.count++
			st.learners[record.LearnerID] = struct{}{}
		}
	}

	for _, kind := range models.ActivityKinds() {
		tally := examTallies[kind]
		if tally == nil {
			continue
		}
		bundle.ExamResults = append(bundle.ExamResults, dto.KindExamResult{
			Kind:    string(kind),
			Pass:    tally.pass,
			Average: tally.average,
			Fail:    tally.fail,
		})
	}

	subjectNames := make([]string, 0, len(subjects))
	for name := range subjects {
		subjectNames = append(subjectNames, name)
	}
	sort.Strings(subjectNames)
	for _, name := range subjectNames {
		st := subjects[name]
		bundle.SubjectAverages = append(bundle.SubjectAverages, dto.SubjectAverage{
			Subject:           name,
			AveragePercentage: roundTo1(st.sum / float64(st.count)),
			GradedLearners:    len(st.learners),
		})
	}

	submittedByKind := s.countSubmissions(activities, signals, sigErr, enrolled)
	bundle.AssignmentStats = kindStats(kindTotals[models.KindAssignment], submittedByKind[models.KindAssignment], kindGrades[models.KindAssignment])
	bundle.QuizStats = kindStats(kindTotals[models.KindQuiz], submittedByKind[models.KindQuiz], kindGrades[models.KindQuiz])
}

func (s *AggregationService) countSubmissions(activities []models.ActivityRecord, signals []models.RawSignal, sigErr error, enrolled map[string]struct{}) map[models.ActivityKind]int {
	counts := make(map[models.ActivityKind]int)
	if sigErr != nil {
		return counts
	}
	kindByActivity := make(map[string]models.ActivityKind, len(activities))
	for _, act := range activities {
		kindByActivity[act.ID] = act.Kind
	}
	for _, sig := range signals {
		if _, ok := enrolled[sig.LearnerID]; !ok {
			continue
		}
		if !sig.ActivityID.Valid {
			continue
		}
		kind, known := kindByActivity[sig.ActivityID.String]
		if !known {
			continue
		}
		if hasAttempt(sig) {
			counts[kind]++
		}
	}
	return counts
}

func (s *AggregationService) attendanceRate(learners []string, lastSeen map[string]time.Time, generatedAt time.Time) float64 {
	if len(learners) == 0 {
		return 0
	}
	cutoff := generatedAt.Add(-s.cfg.AttendanceWindow)
	active := 0
	for _, learnerID := range learners {
		if touch, ok := lastSeen[learnerID]; ok && touch.After(cutoff) {
			active++
		}
	}
	return roundTo1(float64(active) / float64(len(learners)) * 100)
}

func (s *AggregationService) composeStudentBundle(ctx context.Context, learnerID string) *dto.StudentMetricsBundle {
	generatedAt := s.now().UTC()
	snapshotID := s.newID()

	courses, err := s.fetchLearnerCourses(ctx, learnerID)
	if err != nil {
		s.logger.Warn("learner course fetch failed, serving default bundle",
			zap.String("learner_id", learnerID), zap.Error(err))
		bundle := s.fallback.EmptyStudentBundle(snapshotID, learnerID, generatedAt)
		return &bundle
	}

	bundle := s.fallback.EmptyStudentBundle(snapshotID, learnerID, generatedAt)
	if len(courses) == 0 {
		return &bundle
	}

	signals, sigErr := s.fetchLearnerSignals(ctx, learnerID)
	if sigErr != nil {
		s.logger.Warn("learner signal fetch failed, grade and completion evidence unavailable",
			zap.String("learner_id", learnerID), zap.Error(sigErr))
		signals = nil
	}

	type courseActivityKey struct {
		courseID   string
		activityID string
	}
	signalIndex := make(map[courseActivityKey]*models.RawSignal, len(signals))
	for i := range signals {
		sig := &signals[i]
		if sig.ActivityID.Valid {
			signalIndex[courseActivityKey{courseID: sig.CourseID, activityID: sig.ActivityID.String}] = sig
		}
	}

	perKind := make(map[models.ActivityKind]*dto.KindCompletion)
	totalCompleted := 0
	enrolledCourses := make(map[string]struct{}, len(courses))
	knownActivities := make(map[courseActivityKey]struct{})

	for _, course := range courses {
		enrolledCourses[course.ID] = struct{}{}
		raw, err := s.fetchActivities(ctx, course.ID)
		if err != nil {
			s.logger.Warn("course activity fetch failed, course reported without progress",
				zap.String("course_id", course.ID), zap.Error(err))
			bundle.Courses = append(bundle.Courses, dto.CourseProgress{CourseID: course.ID, Title: course.Title})
			continue
		}

		activities := s.normalizeActivities(raw, nil, course.ID)
		completed := 0
		for _, act := range activities {
			knownActivities[courseActivityKey{courseID: course.ID, activityID: act.ID}] = struct{}{}
			sig := signalIndex[courseActivityKey{courseID: course.ID, activityID: act.ID}]
			state := s.resolver.Resolve(act, learnerID, sig)

			kc := perKind[act.Kind]
			if kc == nil {
				kc = &dto.KindCompletion{Kind: string(act.Kind)}
				perKind[act.Kind] = kc
			}
			kc.Total++
			switch state.Status {
			case models.StatusCompleted:
				kc.Completed++
				completed++
			case models.StatusInProgress:
				kc.InProgress++
			default:
				kc.NotStarted++
			}
		}
		totalCompleted += completed

		progress := 0.0
		if len(activities) > 0 {
			progress = roundTo1(float64(completed) / float64(len(activities)) * 100)
		}
		bundle.Courses = append(bundle.Courses, dto.CourseProgress{
			CourseID:            course.ID,
			Title:               course.Title,
			TotalActivities:     len(activities),
			CompletedActivities: completed,
			ProgressPercentage:  progress,
		})
	}

	for _, kind := range models.ActivityKinds() {
		kc := perKind[kind]
		if kc == nil || kc.Total == 0 {
			continue
		}
		kc.Percentage = roundTo1(float64(kc.Completed) / float64(kc.Total) * 100)
		bundle.CompletionByKind = append(bundle.CompletionByKind, *kc)
	}

	// The overall average only trusts grade touchpoints it can place: an
	// enrolled course, and a normalised activity when the signal names one.
	// Course-level grades (no activity id) count whenever the course is
	// enrolled.
	var gradeSum float64
	var gradeCount int
	for _, sig := range signals {
		if _, ok := enrolledCourses[sig.CourseID]; !ok {
			continue
		}
		if sig.ActivityID.Valid {
			if _, ok := knownActivities[courseActivityKey{courseID: sig.CourseID, activityID: sig.ActivityID.String}]; !ok {
				continue
			}
		}
		if record, ok := s.bucketer.BucketSignal(sig); ok {
			gradeSum += record.Percentage
			gradeCount++
		}
	}
	if gradeCount > 0 {
		bundle.OverallPercentage = roundTo1(gradeSum / float64(gradeCount))
	}

	bundle.HoursSpent = roundTo1(float64(totalCompleted) * s.cfg.HoursPerCompletion)
	return &bundle
}

func (s *AggregationService) fetchLearners(ctx context.Context, courseID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	start := time.Now()
	learners, err := s.enrollments.ListLearnerIDs(ctx, courseID)
	s.observeQuery("enrollments", start)
	return learners, wrapUpstream(err, "list enrollments")
}

func (s *AggregationService) fetchActivities(ctx context.Context, courseID string) ([]models.RawActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	start := time.Now()
	activities, err := s.activities.ListByCourse(ctx, courseID)
	s.observeQuery("activities", start)
	return activities, wrapUpstream(err, "list course activities")
}

func (s *AggregationService) fetchCourseSignals(ctx context.Context, courseID string) ([]models.RawSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	start := time.Now()
	signals, err := s.signals.ListByCourse(ctx, courseID)
	s.observeQuery("course_signals", start)
	return signals, wrapUpstream(err, "list course signals")
}

func (s *AggregationService) fetchLearnerCourses(ctx context.Context, learnerID string) ([]models.CourseRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	start := time.Now()
	courses, err := s.enrollments.ListCoursesForLearner(ctx, learnerID)
	s.observeQuery("learner_courses", start)
	return courses, wrapUpstream(err, "list learner courses")
}

func (s *AggregationService) fetchLearnerSignals(ctx context.Context, learnerID string) ([]models.RawSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	start := time.Now()
	signals, err := s.signals.ListByLearner(ctx, learnerID)
	s.observeQuery("learner_signals", start)
	return signals, wrapUpstream(err, "list learner signals")
}

// wrapUpstream tags store failures so logs and recovery paths can tell an
// unavailable upstream apart from engine bugs.
func wrapUpstream(err error, op string) error {
	if err == nil {
		return nil
	}
	return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, op)
}

func (s *AggregationService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

type kindTally struct {
	graded int
	sum    float64
}

func kindStats(total, submitted int, tally *kindTally) dto.ActivityKindStats {
	stats := dto.ActivityKindStats{Total: total, Submitted: submitted}
	if tally != nil && tally.graded > 0 {
		stats.Graded = tally.graded
		stats.AveragePercentage = roundTo1(tally.sum / float64(tally.graded))
	}
	return stats
}

func hasAttempt(sig models.RawSignal) bool {
	if sig.SubmissionCount.Valid && sig.SubmissionCount.Int64 > 0 {
		return true
	}
	if sig.ProgressPercent.Valid && sig.ProgressPercent.Float64 > 0 {
		return true
	}
	return sig.RawScore.Valid && sig.MaxScore.Valid
}

func latestTouch(sig *models.RawSignal) (time.Time, bool) {
	var latest time.Time
	var found bool
	if sig.LastAccessAt.Valid {
		latest = sig.LastAccessAt.Time
		found = true
	}
	if sig.ViewedAt.Valid && sig.ViewedAt.Time.After(latest) {
		latest = sig.ViewedAt.Time
		found = true
	}
	return latest, found
}

func meanPercentage(grades []models.GradeRecord) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Percentage
	}
	return sum / float64(len(grades))
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
