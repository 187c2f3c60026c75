package bodyweight

import (
	"context"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/pkg"
)

type samplesRepo interface {
	Add(ctx context.Context, sample Sample) (*Sample, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]Sample, error)
}

type Service struct {
	repo samplesRepo
	now  func() time.Time
}

func NewService(repo samplesRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) AddSample(ctx context.Context, sample Sample) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyweight.addSample")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := sample.Validate(); err != nil {
		return nil, err
	}
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = s.now()
	}
	if sample.Day == "" {
		sample.Day = daykey.FromTime(sample.CreatedAt)
	}

	return s.repo.Add(ctx, sample)
}

func (s *Service) DeleteSample(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyweight.deleteSample")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Delete(ctx, id)
}

func (s *Service) Series(ctx context.Context) (_ []DailyPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyweight.series")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	samples, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return DailySeries(samples), nil
}

func (s *Service) WeeklyChange(ctx context.Context) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyweight.weeklyChange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	samples, err := s.listAll(ctx)
	if err != nil {
		return 0, err
	}
	return WeeklyChange(DailySeries(samples)), nil
}

func (s *Service) Trend(ctx context.Context) (_ *TrendLine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyweight.trend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	samples, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return Trend(DailySeries(samples)), nil
}

func (s *Service) listAll(ctx context.Context) (samples []Sample, err error) {
	err = pkg.RetryTransient(ctx, func() error {
		var readErr error
		samples, readErr = s.repo.ListAll(ctx)
		return readErr
	})
	return samples, err
}
