package xp

import (
	"context"
	"time"

	"github.com/liftlog-app/liftlog/internal/instrumentation"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"
)

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	TotalXP(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Status is the level snapshot the app renders on the profile screen.
type Status struct {
	TotalXP       int     `json:"totalXp"`
	Level         int     `json:"level"`
	Progress      float64 `json:"progress"`
	NextLevelAtXP int     `json:"nextLevelAtXp"`
}

type Service struct {
	repo  eventsRepo
	instr *instrumentation.Instrumentation
	now   func() time.Time
}

func NewService(repo eventsRepo, instr *instrumentation.Instrumentation) *Service {
	return &Service{
		repo:  repo,
		instr: instr,
		now:   time.Now,
	}
}

// AwardSet appends a SET event worth AmountPerSet.
func (s *Service) AwardSet(ctx context.Context, exercise string) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.awardSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	added, err := s.repo.Add(ctx, Event{
		Kind:      EventKindSet,
		Amount:    AmountPerSet,
		Exercise:  &exercise,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	if s.instr != nil {
		s.instr.CounterXPAwarded.Add(float64(added.Amount))
	}
	return added, nil
}

// AwardPR appends a PR event worth AmountPerPR, with a note naming the
// new estimated one rep max.
func (s *Service) AwardPR(ctx context.Context, exercise, note string) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.awardPR")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	event := Event{
		Kind:      EventKindPR,
		Amount:    AmountPerPR,
		Exercise:  &exercise,
		CreatedAt: s.now(),
	}
	if note != "" {
		event.Note = &note
	}
	added, err := s.repo.Add(ctx, event)
	if err != nil {
		return nil, err
	}
	if s.instr != nil {
		s.instr.CounterXPAwarded.Add(float64(added.Amount))
	}
	return added, nil
}

func (s *Service) Total(ctx context.Context) (total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.total")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		total, readErr = s.repo.TotalXP(ctx)
		return readErr
	})
	return total, err
}

func (s *Service) LevelStatus(ctx context.Context) (_ *Status, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.levelStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	total, err := s.Total(ctx)
	if err != nil {
		return nil, err
	}

	level := LevelFromXP(total)
	return &Status{
		TotalXP:       total,
		Level:         level,
		Progress:      Progress(total),
		NextLevelAtXP: Requirement(minInt(level+1, MaxLevel)),
	}, nil
}

func (s *Service) RecentEvents(ctx context.Context, limit int) (events []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "xp.recentEvents")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		events, readErr = s.repo.ListRecent(ctx, limit)
		return readErr
	})
	return events, err
}
