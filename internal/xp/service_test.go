package xp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEventsRepo struct {
	events []Event
	nextID int
}

func (r *testEventsRepo) Add(_ context.Context, event Event) (*Event, error) {
	r.nextID++
	event.ID = r.nextID
	r.events = append(r.events, event)
	return &event, nil
}

func (r *testEventsRepo) TotalXP(_ context.Context) (int, error) {
	total := 0
	for _, e := range r.events {
		total += e.Amount
	}
	return total, nil
}

func (r *testEventsRepo) ListRecent(_ context.Context, limit int) ([]Event, error) {
	if limit > len(r.events) {
		limit = len(r.events)
	}
	recent := make([]Event, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, r.events[i])
	}
	return recent, nil
}

func TestService_Award(t *testing.T) {
	repo := &testEventsRepo{}
	service := NewService(repo, nil)
	service.now = func() time.Time {
		return time.Date(2025, 2, 5, 18, 30, 0, 0, time.Local)
	}
	ctx := context.Background()

	setEvent, err := service.AwardSet(ctx, "Bench Press")
	require.NoError(t, err)
	assert.Equal(t, EventKindSet, setEvent.Kind)
	assert.Equal(t, AmountPerSet, setEvent.Amount)
	require.NotNil(t, setEvent.Exercise)
	assert.Equal(t, "Bench Press", *setEvent.Exercise)
	assert.Nil(t, setEvent.Note)

	prEvent, err := service.AwardPR(ctx, "Bench Press", "new best: 263")
	require.NoError(t, err)
	assert.Equal(t, EventKindPR, prEvent.Kind)
	assert.Equal(t, AmountPerPR, prEvent.Amount)
	require.NotNil(t, prEvent.Note)
	assert.Equal(t, "new best: 263", *prEvent.Note)

	total, err := service.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, AmountPerSet+AmountPerPR, total)
}

func TestService_LevelStatus(t *testing.T) {
	repo := &testEventsRepo{}
	service := NewService(repo, nil)
	ctx := context.Background()

	// 16 sets of 2 XP = 32 total, level 2 (23), next at 39
	for i := 0; i < 16; i++ {
		_, err := service.AwardSet(ctx, "Squat")
		require.NoError(t, err)
	}

	status, err := service.LevelStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, status.TotalXP)
	assert.Equal(t, 2, status.Level)
	assert.Equal(t, 39, status.NextLevelAtXP)
	assert.InDelta(t, float64(32-23)/float64(39-23), status.Progress, 0.001)
}

func TestService_RecentEvents(t *testing.T) {
	repo := &testEventsRepo{}
	service := NewService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.AwardSet(ctx, "Deadlift")
		require.NoError(t, err)
	}

	events, err := service.RecentEvents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 5, events[0].ID)
}
