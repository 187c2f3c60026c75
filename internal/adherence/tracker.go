package adherence

import (
	"context"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"
)

type adherenceRepo interface {
	Upsert(ctx context.Context, log DayLog) error
	ListAll(ctx context.Context) ([]DayLog, error)
}

type Tracker struct {
	repo adherenceRepo
	now  func() time.Time
}

func NewTracker(repo adherenceRepo) *Tracker {
	return &Tracker{
		repo: repo,
		now:  time.Now,
	}
}

// Toggle sets the day state. Re-sending the same state is a no-op on
// the stored data.
func (t *Tracker) Toggle(ctx context.Context, day daykey.DayKey, taken bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return t.repo.Upsert(ctx, DayLog{Day: day, Taken: taken})
}

// CurrentStreak walks back from today counting consecutive taken days
// and stops at the first day that is false or missing.
func (t *Tracker) CurrentStreak(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.currentStreak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	logs, err := t.listAll(ctx)
	if err != nil {
		return 0, err
	}

	taken := make(map[daykey.DayKey]bool, len(logs))
	for _, l := range logs {
		if l.Taken {
			taken[l.Day] = true
		}
	}

	streak := 0
	for day := daykey.FromTime(t.now()); taken[day]; day = day.AddDays(-1) {
		streak++
	}
	return streak, nil
}

func (t *Tracker) MonthStats(ctx context.Context, month daykey.Month) (_ *MonthStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.monthStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	logs, err := t.listAll(ctx)
	if err != nil {
		return nil, err
	}

	takenCount := 0
	for _, l := range logs {
		if l.Taken && month.Contains(l.Day) {
			takenCount++
		}
	}

	return &MonthStats{
		Month:            month.String(),
		TakenCount:       takenCount,
		TotalDaysInMonth: month.Days(),
	}, nil
}

func (t *Tracker) listAll(ctx context.Context) (logs []DayLog, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		logs, readErr = t.repo.ListAll(ctx)
		return readErr
	})
	return logs, err
}
