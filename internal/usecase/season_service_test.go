package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kprather/pickem-api/internal/domain/schedule"
	"github.com/kprather/pickem-api/internal/platform/logging"
)

func TestSeasonServiceResolveSeason_MixedOutcomesPerWeek(t *testing.T) {
	t.Parallel()

	source := &fakeScheduleSource{snapshots: map[string][]schedule.EventSnapshot{
		"https://upstream.test/seasons/2025/weeks/1": snapshotPair(intPtr(-140), intPtr(120)),
		// Week 2 resolves to nothing and must be reported as empty.
		"https://upstream.test/seasons/2025/weeks/3": snapshotPair(nil, nil),
	}}
	scheduleSvc := NewScheduleService(source, logging.NewNop())
	service := NewSeasonService(scheduleSvc, logging.NewNop())

	result, err := service.ResolveSeason(context.Background(), SeasonResolveInput{
		SeasonYear: 2025,
		Weeks:      []int{1, 2, 3},
		MaxWorkers: 2,
	})
	require.NoError(t, err)

	require.Equal(t, 3, result.WeekCount)
	require.Equal(t, 2, result.WorkerCount)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 1, result.EmptyCount)
	require.Equal(t, 0, result.FailedCount)

	require.Len(t, result.Weeks, 3)
	for i, row := range result.Weeks {
		require.Equal(t, i+1, row.Week, "rows must be sorted by week")
	}
	require.Equal(t, seasonStatusSuccess, result.Weeks[0].Status)
	require.Equal(t, 1, result.Weeks[0].GameCount)
	require.Equal(t, seasonStatusEmpty, result.Weeks[1].Status)
	require.Equal(t, seasonStatusSuccess, result.Weeks[2].Status)
}

func TestSeasonServiceResolveSeason_DefaultsToFullRegularSeason(t *testing.T) {
	t.Parallel()

	source := &fakeScheduleSource{snapshots: map[string][]schedule.EventSnapshot{}}
	scheduleSvc := NewScheduleService(source, logging.NewNop())
	service := NewSeasonService(scheduleSvc, logging.NewNop())

	result, err := service.ResolveSeason(context.Background(), SeasonResolveInput{SeasonYear: 2025})
	require.NoError(t, err)
	require.Equal(t, regularSeasonWeeks, result.WeekCount)
	require.Equal(t, regularSeasonWeeks, result.EmptyCount)
}

func TestSeasonServiceResolveSeason_ValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewSeasonService(NewScheduleService(&fakeScheduleSource{}, logging.NewNop()), logging.NewNop())

	_, err := service.ResolveSeason(context.Background(), SeasonResolveInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.ResolveSeason(context.Background(), SeasonResolveInput{SeasonYear: 2025, Weeks: []int{0}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeSeasonWorkerCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, defaultSeasonWorkerCount, normalizeSeasonWorkerCount(0, 18))
	require.Equal(t, maxSeasonWorkerCount, normalizeSeasonWorkerCount(99, 99))
	require.Equal(t, 3, normalizeSeasonWorkerCount(8, 3))
}
