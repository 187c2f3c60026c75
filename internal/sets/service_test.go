package sets

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MocksetsRepo, *MockxpAwarder) {
	ctrl := gomock.NewController(t)
	repoMock := NewMocksetsRepo(ctrl)
	xpMock := NewMockxpAwarder(ctrl)
	service := NewService(repoMock, xpMock)
	service.now = func() time.Time {
		return time.Date(2025, 2, 5, 18, 30, 0, 0, time.Local)
	}
	return service, repoMock, xpMock
}

func TestService_LogSet_FirstSetIsPR(t *testing.T) {
	service, repoMock, xpMock := newTestService(t)
	ctx := context.Background()
	day := daykey.DayKey("2025-02-05")

	newSet := Set{Exercise: "Bench Press", Weight: 225, Reps: 5}
	storedSet := newSet
	storedSet.ID = 1
	storedSet.Day = day

	// previous best is read before the insert
	repoMock.EXPECT().ListExercise(gomock.Any(), "Bench Press").Return(nil, nil)
	repoMock.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&storedSet, nil)
	repoMock.EXPECT().ListExerciseDay(gomock.Any(), "Bench Press", day).Return([]Set{storedSet}, nil)
	xpMock.EXPECT().AwardSet(gomock.Any(), "Bench Press").Return(nil, nil)
	xpMock.EXPECT().AwardPR(gomock.Any(), "Bench Press", gomock.Any()).Return(nil, nil)

	result, err := service.LogSet(ctx, newSet)
	require.NoError(t, err)

	assert.True(t, result.PRHappened)
	assert.Equal(t, 263.0, result.DayBest)
	assert.Nil(t, result.PrevAllTimeBest)
	assert.Equal(t, 1, result.Set.ID)
	assert.Equal(t, day, result.Set.Day)
}

func TestService_LogSet_RepeatIsNotPR(t *testing.T) {
	service, repoMock, xpMock := newTestService(t)
	ctx := context.Background()
	day := daykey.DayKey("2025-02-05")

	oldSet := Set{ID: 1, Exercise: "Bench Press", Weight: 225, Reps: 5, Day: "2025-02-01"}
	newSet := Set{Exercise: "Bench Press", Weight: 225, Reps: 5}
	storedSet := newSet
	storedSet.ID = 2
	storedSet.Day = day

	repoMock.EXPECT().ListExercise(gomock.Any(), "Bench Press").Return([]Set{oldSet}, nil)
	repoMock.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&storedSet, nil)
	repoMock.EXPECT().ListExerciseDay(gomock.Any(), "Bench Press", day).Return([]Set{storedSet}, nil)
	xpMock.EXPECT().AwardSet(gomock.Any(), "Bench Press").Return(nil, nil)
	// no AwardPR, matching the old best is not a new best

	result, err := service.LogSet(ctx, newSet)
	require.NoError(t, err)

	assert.False(t, result.PRHappened)
	assert.Equal(t, 263.0, result.DayBest)
	require.NotNil(t, result.PrevAllTimeBest)
	assert.Equal(t, 263.0, *result.PrevAllTimeBest)
}

func TestService_LogSet_HeavierSetBeatsPreviousBest(t *testing.T) {
	service, repoMock, xpMock := newTestService(t)
	ctx := context.Background()
	day := daykey.DayKey("2025-02-05")

	oldSet := Set{ID: 1, Exercise: "Bench Press", Weight: 225, Reps: 5, Day: "2025-02-01"}
	newSet := Set{Exercise: "Bench Press", Weight: 235, Reps: 5}
	storedSet := newSet
	storedSet.ID = 2
	storedSet.Day = day

	repoMock.EXPECT().ListExercise(gomock.Any(), "Bench Press").Return([]Set{oldSet}, nil)
	repoMock.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&storedSet, nil)
	repoMock.EXPECT().ListExerciseDay(gomock.Any(), "Bench Press", day).Return([]Set{storedSet}, nil)
	xpMock.EXPECT().AwardSet(gomock.Any(), "Bench Press").Return(nil, nil)
	xpMock.EXPECT().AwardPR(gomock.Any(), "Bench Press", "new best est 1RM: 274").Return(nil, nil)

	result, err := service.LogSet(ctx, newSet)
	require.NoError(t, err)

	assert.True(t, result.PRHappened)
	assert.Equal(t, 274.0, result.DayBest)
	require.NotNil(t, result.PrevAllTimeBest)
	assert.Equal(t, 263.0, *result.PrevAllTimeBest)
}

func TestService_LogSet_Validation(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.LogSet(ctx, Set{Exercise: "", Weight: 100, Reps: 5})
	assert.ErrorIs(t, err, ErrInvalidSet)

	_, err = service.LogSet(ctx, Set{Exercise: "Squat", Weight: -5, Reps: 5})
	assert.ErrorIs(t, err, ErrInvalidSet)

	_, err = service.LogSet(ctx, Set{Exercise: "Squat", Weight: 100, Reps: 0})
	assert.ErrorIs(t, err, ErrInvalidSet)
}

func TestService_LogSet_NormalizesExerciseName(t *testing.T) {
	service, repoMock, xpMock := newTestService(t)
	ctx := context.Background()
	day := daykey.DayKey("2025-02-05")

	storedSet := Set{ID: 1, Exercise: "Bench Press", Weight: 100, Reps: 5, Day: day}

	repoMock.EXPECT().ListExercise(gomock.Any(), "Bench Press").Return(nil, nil)
	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, set Set) (*Set, error) {
			assert.Equal(t, "Bench Press", set.Exercise)
			return &storedSet, nil
		})
	repoMock.EXPECT().ListExerciseDay(gomock.Any(), "Bench Press", day).Return([]Set{storedSet}, nil)
	xpMock.EXPECT().AwardSet(gomock.Any(), "Bench Press").Return(nil, nil)
	xpMock.EXPECT().AwardPR(gomock.Any(), "Bench Press", gomock.Any()).Return(nil, nil)

	_, err := service.LogSet(ctx, Set{Exercise: "  Bench   Press ", Weight: 100, Reps: 5})
	require.NoError(t, err)
}

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := newKeyedMutex()

	counters := map[string]*int{"Squat": new(int), "Bench Press": new(int)}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, key := range []string{"Squat", "Bench Press"} {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				unlock := km.lock(key)
				defer unlock()
				*counters[key]++
			}(key)
		}
	}
	wg.Wait()

	assert.Equal(t, 100, *counters["Squat"])
	assert.Equal(t, 100, *counters["Bench Press"])
}
