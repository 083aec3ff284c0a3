package rankings

import (
	"sort"

	"github.com/kprather/pickem-api/internal/domain/schedule"
)

// TossUp is the expected-winner sentinel when no side can be picked from
// the available moneylines.
const TossUp = "Toss-Up / N/A"

// Sides of a matchup as ExtractWinner reports them.
const (
	SideHome = "home"
	SideAway = "away"
)

// RankedEvent is one matchup annotated with the moneyline pick and its
// confidence rank. Higher rank means a stronger favorite.
type RankedEvent struct {
	EventID        string `json:"eventId"`
	AwayTeam       string `json:"awayTeam"`
	HomeTeam       string `json:"homeTeam"`
	AwayOdds       string `json:"awayOdds"`
	HomeOdds       string `json:"homeOdds"`
	ExpectedWinner string `json:"expectedWinner"`
	WinnerLine     *int   `json:"winnerLine,omitempty"`
	ConfidenceRank int    `json:"confidenceRank"`
}

// ExtractWinner picks the favored side from two American moneylines. The
// more negative line wins; among two positive lines the smaller wins. Equal
// lines fall to the home side. A missing line on either side, or a pair the
// comparison rules do not cover, yields no pick.
func ExtractWinner(awayLine, homeLine *int) (side string, line *int) {
	if awayLine == nil || homeLine == nil {
		return "", nil
	}

	switch {
	case *awayLine < 0 || *homeLine < 0:
		if *awayLine < *homeLine {
			return SideAway, awayLine
		}
		return SideHome, homeLine
	case *awayLine > 0 && *homeLine > 0:
		if *awayLine < *homeLine {
			return SideAway, awayLine
		}
		return SideHome, homeLine
	default:
		return "", nil
	}
}

// Rank orders the games that have a pick by confidence. Games without a
// pick are excluded. The strongest favorite (most negative line) receives
// rank N for N ranked games, the weakest receives rank 1; the sort is
// stable, so input order breaks remaining ties.
func Rank(games []schedule.Game) []RankedEvent {
	ranked := make([]RankedEvent, 0, len(games))
	for _, game := range games {
		side, line := ExtractWinner(game.AwayMoneyline, game.HomeMoneyline)
		if side == "" || line == nil {
			continue
		}

		winner := game.Home.TeamName
		if side == SideAway {
			winner = game.Away.TeamName
		}

		ranked = append(ranked, RankedEvent{
			EventID:        game.EventID,
			AwayTeam:       game.Away.TeamName,
			HomeTeam:       game.Home.TeamName,
			AwayOdds:       game.AwayOdds,
			HomeOdds:       game.HomeOdds,
			ExpectedWinner: winner,
			WinnerLine:     line,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].WinnerLine < *ranked[j].WinnerLine
	})

	total := len(ranked)
	for i := range ranked {
		ranked[i].ConfidenceRank = total - i
	}
	return ranked
}

// Pick resolves the expected winner name for one game, falling back to the
// toss-up sentinel when no side is favored.
func Pick(game schedule.Game) string {
	side, _ := ExtractWinner(game.AwayMoneyline, game.HomeMoneyline)
	switch side {
	case SideAway:
		return game.Away.TeamName
	case SideHome:
		return game.Home.TeamName
	default:
		return TossUp
	}
}
