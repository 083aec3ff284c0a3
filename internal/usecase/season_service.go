package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kprather/pickem-api/internal/platform/logging"
)

const (
	seasonStatusSuccess = "success"
	seasonStatusFailed  = "failed"
	seasonStatusEmpty   = "empty"

	regularSeasonWeeks       = 18
	defaultSeasonWorkerCount = 4
	maxSeasonWorkerCount     = 16
)

type SeasonService struct {
	schedules *ScheduleService
	logger    *logging.Logger
}

func NewSeasonService(schedules *ScheduleService, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{schedules: schedules, logger: logger}
}

type SeasonResolveInput struct {
	SeasonYear int
	// Weeks narrows the run; empty means every regular-season week.
	Weeks      []int
	MaxWorkers int
}

type SeasonResolveResult struct {
	SeasonYear   int          `json:"season_year"`
	WeekCount    int          `json:"week_count"`
	SuccessCount int          `json:"success_count"`
	FailedCount  int          `json:"failed_count"`
	EmptyCount   int          `json:"empty_count"`
	WorkerCount  int          `json:"worker_count"`
	Weeks        []WeekResult `json:"weeks"`
}

type WeekResult struct {
	Week       int    `json:"week"`
	GameCount  int    `json:"game_count"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// ResolveSeason resolves every requested week concurrently and reports a
// per-week outcome row. One week failing never aborts the others.
func (s *SeasonService) ResolveSeason(ctx context.Context, input SeasonResolveInput) (SeasonResolveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.ResolveSeason")
	defer span.End()

	if input.SeasonYear <= 0 {
		return SeasonResolveResult{}, fmt.Errorf("%w: season year must be positive", ErrInvalidInput)
	}

	weeks, err := normalizeSeasonWeeks(input.Weeks)
	if err != nil {
		return SeasonResolveResult{}, err
	}

	workerCount := normalizeSeasonWorkerCount(input.MaxWorkers, len(weeks))
	result := SeasonResolveResult{
		SeasonYear:  input.SeasonYear,
		WeekCount:   len(weeks),
		WorkerCount: workerCount,
		Weeks:       make([]WeekResult, 0, len(weeks)),
	}

	rows := make(chan WeekResult, len(weeks))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var emptyCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SeasonResolveResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, week := range weeks {
		week := week
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WeekResult{Week: week}

			games, resolveErr := s.schedules.ResolveSchedule(ctx, ResolveInput{
				SeasonYear: input.SeasonYear,
				Week:       week,
			})
			row.DurationMs = time.Since(start).Milliseconds()

			switch {
			case resolveErr == nil:
				row.Status = seasonStatusSuccess
				row.GameCount = len(games)
				successCount.Add(1)
			case isEmptyResult(resolveErr):
				row.Status = seasonStatusEmpty
				emptyCount.Add(1)
			default:
				row.Status = seasonStatusFailed
				row.Message = resolveErr.Error()
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return SeasonResolveResult{}, fmt.Errorf("submit week to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Weeks = append(result.Weeks, row)
	}
	sort.SliceStable(result.Weeks, func(i, j int) bool {
		return result.Weeks[i].Week < result.Weeks[j].Week
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.EmptyCount = int(emptyCount.Load())

	s.logger.InfoContext(ctx, "season resolution finished",
		"year", input.SeasonYear, "weeks", result.WeekCount,
		"success", result.SuccessCount, "failed", result.FailedCount, "empty", result.EmptyCount)
	return result, nil
}

func normalizeSeasonWeeks(weeks []int) ([]int, error) {
	if len(weeks) == 0 {
		out := make([]int, 0, regularSeasonWeeks)
		for week := 1; week <= regularSeasonWeeks; week++ {
			out = append(out, week)
		}
		return out, nil
	}

	seen := make(map[int]struct{}, len(weeks))
	out := make([]int, 0, len(weeks))
	for _, week := range weeks {
		if week < 1 || week > 23 {
			return nil, fmt.Errorf("%w: week %d is out of range", ErrInvalidInput, week)
		}
		if _, dup := seen[week]; dup {
			continue
		}
		seen[week] = struct{}{}
		out = append(out, week)
	}
	return out, nil
}

func normalizeSeasonWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultSeasonWorkerCount
	}
	if count > maxSeasonWorkerCount {
		count = maxSeasonWorkerCount
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
