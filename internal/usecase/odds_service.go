package usecase

import (
	"context"

	"github.com/kprather/pickem-api/internal/domain/rankings"
	"github.com/kprather/pickem-api/internal/domain/schedule"
	"github.com/kprather/pickem-api/internal/platform/logging"
)

type OddsService struct {
	schedules *ScheduleService
	logger    *logging.Logger
}

func NewOddsService(schedules *ScheduleService, logger *logging.Logger) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OddsService{schedules: schedules, logger: logger}
}

type RankingsResult struct {
	Ranked []rankings.RankedEvent `json:"ranked"`
	// TossUps lists matchups that could not be ranked for lack of a
	// usable moneyline pair.
	TossUps []rankings.RankedEvent `json:"tossUps"`
}

// RankCurrentOdds resolves the requested week and orders its games by
// moneyline confidence. An empty schedule is an error; a schedule where no
// game is rankable is not, it just yields an empty ranked list.
func (s *OddsService) RankCurrentOdds(ctx context.Context, input ResolveInput) (RankingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "OddsService.RankCurrentOdds")
	defer span.End()

	games, err := s.schedules.ResolveSchedule(ctx, input)
	if err != nil {
		return RankingsResult{}, err
	}

	result := RankingsResult{
		Ranked:  rankings.Rank(games),
		TossUps: tossUps(games),
	}

	s.logger.InfoContext(ctx, "odds ranked",
		"year", input.SeasonYear, "week", input.Week,
		"games", len(games), "ranked", len(result.Ranked), "toss_ups", len(result.TossUps))
	return result, nil
}

func tossUps(games []schedule.Game) []rankings.RankedEvent {
	var out []rankings.RankedEvent
	for _, game := range games {
		if rankings.Pick(game) != rankings.TossUp {
			continue
		}
		out = append(out, rankings.RankedEvent{
			EventID:        game.EventID,
			AwayTeam:       game.Away.TeamName,
			HomeTeam:       game.Home.TeamName,
			AwayOdds:       game.AwayOdds,
			HomeOdds:       game.HomeOdds,
			ExpectedWinner: rankings.TossUp,
		})
	}
	return out
}
