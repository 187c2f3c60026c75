package sets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/internal/xp"
	"github.com/liftlog-app/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sets

type setsRepo interface {
	Add(ctx context.Context, set Set) (*Set, error)
	Delete(ctx context.Context, id int) error
	ListExercise(ctx context.Context, exercise string) ([]Set, error)
	ListExerciseDay(ctx context.Context, exercise string, day daykey.DayKey) ([]Set, error)
	ListDay(ctx context.Context, day daykey.DayKey) ([]Set, error)
}

type xpAwarder interface {
	AwardSet(ctx context.Context, exercise string) (*xp.Event, error)
	AwardPR(ctx context.Context, exercise, note string) (*xp.Event, error)
}

// LogSetResult tells the app what the new set did: the stored set, the
// best estimated one rep max of the day, and whether it beat the all
// time best as it was before this set.
type LogSetResult struct {
	Set             Set      `json:"set"`
	PRHappened      bool     `json:"prHappened"`
	DayBest         float64  `json:"dayBest"`
	PrevAllTimeBest *float64 `json:"prevAllTimeBest,omitempty"`
}

type Service struct {
	repo     setsRepo
	analyzer *Analyzer
	xp       xpAwarder
	locks    *keyedMutex
	now      func() time.Time
}

func NewService(repo setsRepo, xpAwards xpAwarder) *Service {
	return &Service{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		xp:       xpAwards,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// LogSet stores a set and detects PRs. The order is fixed: read the
// previous all time best, insert, recompute the day best, then compare
// strictly. The whole sequence holds the per exercise lock so two
// concurrent logs for the same exercise cannot both read the same
// previous best.
func (s *Service) LogSet(ctx context.Context, set Set) (_ *LogSetResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sets.logSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	set.Exercise = strings.Join(strings.Fields(set.Exercise), " ")
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = s.now()
	}
	if set.Day == "" {
		set.Day = daykey.FromTime(set.CreatedAt)
	}
	span.SetAttributes(
		attribute.String("exercise", set.Exercise),
		attribute.String("day", string(set.Day)),
	)

	unlock := s.locks.lock(set.Exercise)
	defer unlock()

	prevBest, err := s.analyzer.AllTimeBest(ctx, set.Exercise)
	if err != nil {
		return nil, fmt.Errorf("get previous all time best: %w", err)
	}

	added, err := s.repo.Add(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}

	dayBest, err := s.analyzer.DayBest(ctx, set.Exercise, set.Day)
	if err != nil {
		return nil, fmt.Errorf("get day best: %w", err)
	}
	if dayBest == nil {
		// the set was just inserted, the day cannot be empty
		est := EstimatedOneRepMax(set.Weight, set.Reps)
		dayBest = &est
	}

	prevBestVal := 0.0
	if prevBest != nil {
		prevBestVal = *prevBest
	}
	prHappened := *dayBest > prevBestVal

	if _, err := s.xp.AwardSet(ctx, set.Exercise); err != nil {
		log.Errorf("failed to award set xp [%s]: %s", set.Exercise, err)
	}
	if prHappened {
		note := fmt.Sprintf("new best est 1RM: %g", *dayBest)
		if _, err := s.xp.AwardPR(ctx, set.Exercise, note); err != nil {
			log.Errorf("failed to award pr xp [%s]: %s", set.Exercise, err)
		}
	}

	return &LogSetResult{
		Set:             *added,
		PRHappened:      prHappened,
		DayBest:         *dayBest,
		PrevAllTimeBest: prevBest,
	}, nil
}

func (s *Service) DeleteSet(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sets.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return s.repo.Delete(ctx, id)
}

func (s *Service) DayBest(ctx context.Context, exercise string, day daykey.DayKey) (best *float64, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		best, readErr = s.analyzer.DayBest(ctx, exercise, day)
		return readErr
	})
	return best, err
}

func (s *Service) AllTimeBest(ctx context.Context, exercise string) (best *float64, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		best, readErr = s.analyzer.AllTimeBest(ctx, exercise)
		return readErr
	})
	return best, err
}

func (s *Service) LastSessionSummary(ctx context.Context, exercise string) (summary *SessionSummary, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		summary, readErr = s.analyzer.LastSessionSummary(ctx, exercise)
		return readErr
	})
	return summary, err
}

func (s *Service) SetsForDay(ctx context.Context, day daykey.DayKey) (daySets []Set, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		daySets, readErr = s.repo.ListDay(ctx, day)
		return readErr
	})
	return daySets, err
}
