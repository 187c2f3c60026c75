package bodyweight

import (
	"context"
	"testing"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSamplesRepo struct {
	samples []Sample
	nextID  int
}

func (r *testSamplesRepo) Add(_ context.Context, sample Sample) (*Sample, error) {
	r.nextID++
	sample.ID = r.nextID
	r.samples = append(r.samples, sample)
	return &sample, nil
}

func (r *testSamplesRepo) Delete(_ context.Context, id int) error {
	for i, s := range r.samples {
		if s.ID == id {
			r.samples = append(r.samples[:i], r.samples[i+1:]...)
			return nil
		}
	}
	return ErrSampleNotFound
}

func (r *testSamplesRepo) ListAll(_ context.Context) ([]Sample, error) {
	return r.samples, nil
}

func TestService_AddSample(t *testing.T) {
	repo := &testSamplesRepo{}
	service := NewService(repo)
	service.now = func() time.Time {
		return time.Date(2025, 2, 5, 8, 0, 0, 0, time.Local)
	}
	ctx := context.Background()

	added, err := service.AddSample(ctx, Sample{WeightLb: 181.5})
	require.NoError(t, err)
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, daykey.DayKey("2025-02-05"), added.Day)

	_, err = service.AddSample(ctx, Sample{WeightLb: 0})
	assert.ErrorIs(t, err, ErrInvalidSample)
	assert.Len(t, repo.samples, 1)
}

func TestService_SeriesAndAnalytics(t *testing.T) {
	repo := &testSamplesRepo{}
	service := NewService(repo)
	ctx := context.Background()

	for day := 1; day <= 14; day++ {
		weight := 182.0
		if day > 7 {
			weight = 180.0
		}
		_, err := service.AddSample(ctx, Sample{
			WeightLb:  weight,
			Day:       februaryDay(day),
			CreatedAt: time.Date(2025, 2, day, 8, 0, 0, 0, time.Local),
		})
		require.NoError(t, err)
	}

	points, err := service.Series(ctx)
	require.NoError(t, err)
	assert.Len(t, points, 14)

	change, err := service.WeeklyChange(ctx)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, change, 0.0001)

	trend, err := service.Trend(ctx)
	require.NoError(t, err)
	require.NotNil(t, trend)
	assert.Less(t, trend.Slope, 0.0)
}

func TestService_DeleteSample(t *testing.T) {
	repo := &testSamplesRepo{}
	service := NewService(repo)
	ctx := context.Background()

	added, err := service.AddSample(ctx, Sample{WeightLb: 180, Day: "2025-02-01"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSample(ctx, added.ID))
	assert.ErrorIs(t, service.DeleteSample(ctx, added.ID), ErrSampleNotFound)
}
