package sets

import (
	"context"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type analyzerRepo interface {
	ListExercise(ctx context.Context, exercise string) ([]Set, error)
	ListExerciseDay(ctx context.Context, exercise string, day daykey.DayKey) ([]Set, error)
}

// SessionSummary describes the most recent finished session of an
// exercise, i.e. the last day with sets strictly before today.
type SessionSummary struct {
	Day              daykey.DayKey `json:"day"`
	SetCount         int           `json:"setCount"`
	AvgWeight        float64       `json:"avgWeight"`
	AvgReps          float64       `json:"avgReps"`
	BestEstOneRepMax float64       `json:"bestEstOneRepMax"`
}

type Analyzer struct {
	repo analyzerRepo
	now  func() time.Time
}

func NewAnalyzer(repo analyzerRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
		now:  time.Now,
	}
}

// BestEstimatedOneRepMax returns the max estimated one rep max over
// the given sets, nil when there are none.
func BestEstimatedOneRepMax(sets []Set) *float64 {
	if len(sets) == 0 {
		return nil
	}
	best := EstimatedOneRepMax(sets[0].Weight, sets[0].Reps)
	for _, s := range sets[1:] {
		if est := EstimatedOneRepMax(s.Weight, s.Reps); est > best {
			best = est
		}
	}
	return &best
}

func (a *Analyzer) DayBest(ctx context.Context, exercise string, day daykey.DayKey) (_ *float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sets.analyzer.dayBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise", exercise),
		attribute.String("day", string(day)),
	)

	daySets, err := a.repo.ListExerciseDay(ctx, exercise, day)
	if err != nil {
		return nil, err
	}
	return BestEstimatedOneRepMax(daySets), nil
}

func (a *Analyzer) AllTimeBest(ctx context.Context, exercise string) (_ *float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sets.analyzer.allTimeBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))

	allSets, err := a.repo.ListExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return BestEstimatedOneRepMax(allSets), nil
}

// LastSessionSummary finds the most recent day strictly before today
// that has sets for the exercise. Nil when there is no such day.
func (a *Analyzer) LastSessionSummary(ctx context.Context, exercise string) (_ *SessionSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sets.analyzer.lastSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))

	allSets, err := a.repo.ListExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}

	today := daykey.FromTime(a.now())
	var lastDay daykey.DayKey
	for _, s := range allSets {
		if s.Day.Before(today) && (lastDay == "" || lastDay.Before(s.Day)) {
			lastDay = s.Day
		}
	}
	if lastDay == "" {
		return nil, nil
	}

	var daySets []Set
	for _, s := range allSets {
		if s.Day == lastDay {
			daySets = append(daySets, s)
		}
	}

	summary := &SessionSummary{
		Day:      lastDay,
		SetCount: len(daySets),
	}
	var weightSum, repsSum float64
	for _, s := range daySets {
		weightSum += s.Weight
		repsSum += float64(s.Reps)
	}
	summary.AvgWeight = weightSum / float64(len(daySets))
	summary.AvgReps = repsSum / float64(len(daySets))
	if best := BestEstimatedOneRepMax(daySets); best != nil {
		summary.BestEstOneRepMax = *best
	}

	return summary, nil
}
