package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// OddsUnavailable is rendered when no moneyline could be resolved for
	// a side from either odds shape.
	OddsUnavailable = "N/A"

	// scoreDash is the forced score for games that have not started.
	scoreDash = "-"
)

// Normalize projects resolved event snapshots into flat Game records. It is
// a pure function: unusable snapshots are skipped, never errored.
//
// A snapshot is usable when its first competition names one home and one
// away competitor by role and both competitors carry a resolved, non-empty
// team name. Side status derives from the event state: "post" splits into
// winner/loser by comparing the numeric scores (ties fall to the provider's
// winner flag, then tie for both), "pre" or a missing state means upcoming
// with scores forced to the dash sentinel, and anything else counts as in
// progress.
func Normalize(snapshots []EventSnapshot) []Game {
	games := make([]Game, 0, len(snapshots))
	for _, snapshot := range snapshots {
		game, ok := normalizeEvent(snapshot)
		if !ok {
			continue
		}
		games = append(games, game)
	}
	return games
}

func normalizeEvent(snapshot EventSnapshot) (Game, bool) {
	home, away, ok := splitByRole(snapshot.Competition.Competitors)
	if !ok {
		return Game{}, false
	}
	if strings.TrimSpace(home.TeamName) == "" || strings.TrimSpace(away.TeamName) == "" {
		return Game{}, false
	}

	homeStatus, awayStatus := sideStatuses(snapshot.StatusState, home, away)

	homeLine := resolveMoneyline(snapshot.Competition.Odds.HomeMoneyline, snapshot.Competition.Odds.Flat, home.TeamID)
	awayLine := resolveMoneyline(snapshot.Competition.Odds.AwayMoneyline, snapshot.Competition.Odds.Flat, away.TeamID)

	upcoming := homeStatus == StatusUpcoming

	return Game{
		EventID:       snapshot.ID,
		Name:          snapshot.Name,
		ShortName:     snapshot.ShortName,
		Date:          snapshot.Date,
		Home:          buildSide(home, homeStatus, upcoming),
		Away:          buildSide(away, awayStatus, upcoming),
		HomeOdds:      FormatMoneyline(homeLine),
		AwayOdds:      FormatMoneyline(awayLine),
		HomeMoneyline: homeLine,
		AwayMoneyline: awayLine,
	}, true
}

func splitByRole(competitors []CompetitorSnapshot) (home, away CompetitorSnapshot, ok bool) {
	var haveHome, haveAway bool
	for _, competitor := range competitors {
		switch strings.ToLower(strings.TrimSpace(competitor.HomeAway)) {
		case "home":
			if !haveHome {
				home = competitor
				haveHome = true
			}
		case "away":
			if !haveAway {
				away = competitor
				haveAway = true
			}
		}
	}
	return home, away, haveHome && haveAway
}

func sideStatuses(state string, home, away CompetitorSnapshot) (string, string) {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "post":
		return finalOutcome(home, away)
	case "pre", "":
		return StatusUpcoming, StatusUpcoming
	default:
		// "in" and any state the provider invents later.
		return StatusInProgress, StatusInProgress
	}
}

// finalOutcome settles a completed game by numeric score; the provider's
// winner flag only breaks exact ties (not every tier carries it).
func finalOutcome(home, away CompetitorSnapshot) (string, string) {
	homeScore, homeOK := parseScore(home.ScoreDisplay)
	awayScore, awayOK := parseScore(away.ScoreDisplay)

	if homeOK && awayOK {
		switch {
		case homeScore > awayScore:
			return StatusWinner, StatusLoser
		case awayScore > homeScore:
			return StatusLoser, StatusWinner
		}
	}

	switch {
	case home.Winner:
		return StatusWinner, StatusLoser
	case away.Winner:
		return StatusLoser, StatusWinner
	default:
		return StatusTie, StatusTie
	}
}

func parseScore(display string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(display), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func buildSide(competitor CompetitorSnapshot, status string, upcoming bool) GameSide {
	score := strings.TrimSpace(competitor.ScoreDisplay)
	if upcoming || score == "" {
		score = scoreDash
	}
	return GameSide{
		TeamID:        competitor.TeamID,
		TeamName:      competitor.TeamName,
		Abbreviation:  competitor.Abbreviation,
		LogoURL:       competitor.LogoURL,
		RecordSummary: competitor.RecordSummary,
		Score:         score,
		Status:        status,
	}
}

// resolveMoneyline prefers the structured per-side line and falls back to
// the flat list matched by team identifier.
func resolveMoneyline(primary *int, flat []FlatOddsLine, teamID string) *int {
	if primary != nil {
		return primary
	}
	if teamID == "" {
		return nil
	}
	for _, line := range flat {
		if line.TeamID == teamID {
			value := line.Moneyline
			return &value
		}
	}
	return nil
}

// FormatMoneyline renders an American moneyline: positive lines carry an
// explicit plus sign, absent lines render the unavailable sentinel.
func FormatMoneyline(line *int) string {
	if line == nil {
		return OddsUnavailable
	}
	if *line > 0 {
		return fmt.Sprintf("+%d", *line)
	}
	return fmt.Sprintf("%d", *line)
}
