package usecase

import (
	"context"
	"fmt"

	"github.com/kprather/pickem-api/internal/domain/schedule"
	"github.com/kprather/pickem-api/internal/platform/logging"
)

// ScheduleSource is the upstream provider contract: it resolves a schedule
// entry point into fully expanded event snapshots.
type ScheduleSource interface {
	ResolveSchedule(ctx context.Context, startURL string, seasonYear int) ([]schedule.EventSnapshot, error)
	ScoreboardURL() string
	ScheduleURL(year, week int) string
}

type ScheduleService struct {
	source ScheduleSource
	logger *logging.Logger
}

func NewScheduleService(source ScheduleSource, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{source: source, logger: logger}
}

type ResolveInput struct {
	// SeasonYear scopes record lookups; required when Week is set.
	SeasonYear int
	// Week selects a specific regular-season week. Zero means the
	// current scoreboard.
	Week int
}

// ResolveSchedule resolves and normalizes one week of games. A schedule
// that resolves to zero usable games is reported as ErrEmptyResult so
// callers can distinguish "nothing scheduled" from a transport failure.
func (s *ScheduleService) ResolveSchedule(ctx context.Context, input ResolveInput) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.ResolveSchedule")
	defer span.End()

	if input.Week < 0 {
		return nil, fmt.Errorf("%w: week must not be negative", ErrInvalidInput)
	}
	if input.Week > 0 && input.SeasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required when a week is set", ErrInvalidInput)
	}

	startURL := s.source.ScoreboardURL()
	if input.Week > 0 {
		startURL = s.source.ScheduleURL(input.SeasonYear, input.Week)
	}

	snapshots, err := s.source.ResolveSchedule(ctx, startURL, input.SeasonYear)
	if err != nil {
		return nil, fmt.Errorf("resolve schedule year=%d week=%d: %w", input.SeasonYear, input.Week, err)
	}

	games := schedule.Normalize(snapshots)
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: year=%d week=%d", ErrEmptyResult, input.SeasonYear, input.Week)
	}

	s.logger.InfoContext(ctx, "schedule resolved",
		"year", input.SeasonYear, "week", input.Week,
		"snapshots", len(snapshots), "games", len(games))
	return games, nil
}
