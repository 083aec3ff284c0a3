package espn

import (
	"github.com/kprather/pickem-api/internal/domain/schedule"
)

// snapshots projects the resolved wire graph into domain snapshots. Only
// the first competition of each event participates; events were already
// filtered for structural validity in phase 0.
func (c *Client) snapshots(events []*Event) []schedule.EventSnapshot {
	out := make([]schedule.EventSnapshot, 0, len(events))
	for _, ev := range events {
		comp := ev.Competitions[0]
		snapshot := schedule.EventSnapshot{
			ID:          ev.ID,
			Name:        ev.Name,
			ShortName:   ev.ShortName,
			Date:        ev.Date,
			StatusState: ev.statusState(),
			Competition: schedule.CompetitionSnapshot{
				ID:   comp.ID,
				Odds: oddsSnapshot(comp.Odds),
			},
		}
		for _, competitor := range comp.Competitors {
			if competitor == nil {
				continue
			}
			snapshot.Competition.Competitors = append(snapshot.Competition.Competitors, competitorSnapshot(competitor))
		}
		out = append(out, snapshot)
	}
	return out
}

func competitorSnapshot(competitor *Competitor) schedule.CompetitorSnapshot {
	snapshot := schedule.CompetitorSnapshot{
		HomeAway:     competitor.HomeAway,
		Winner:       competitor.Winner,
		ScoreDisplay: competitor.Score.display(),
	}
	if team := competitor.Team; team != nil {
		snapshot.TeamID = team.ID
		snapshot.TeamName = firstNonEmpty(team.DisplayName, team.Name)
		snapshot.Abbreviation = team.Abbreviation
		snapshot.LogoURL = team.logoURL()
	}
	snapshot.RecordSummary = recordSummaryFor(competitor)
	return snapshot
}

func recordSummaryFor(competitor *Competitor) string {
	for _, record := range competitor.Records {
		if record.isTotal() && record.summary() != "" {
			return record.summary()
		}
	}
	if competitor.Team != nil {
		for _, record := range competitor.Team.Records {
			if record.isTotal() && record.summary() != "" {
				return record.summary()
			}
		}
	}
	return ""
}

// oddsSnapshot extracts moneylines from the first odds entry. The entry's
// nested items[0] is the real detail source when present; the flat
// per-team lines ride along as the fallback shape.
func oddsSnapshot(source *OddsSource) schedule.OddsSnapshot {
	var snapshot schedule.OddsSnapshot
	if source == nil || len(source.Entries) == 0 {
		return snapshot
	}

	entry := source.Entries[0].detailSource()
	if entry == nil {
		return snapshot
	}

	if line, ok := entry.HomeTeamOdds.Moneyline(); ok {
		snapshot.HomeMoneyline = &line
	}
	if line, ok := entry.AwayTeamOdds.Moneyline(); ok {
		snapshot.AwayMoneyline = &line
	}

	for _, flat := range entry.Moneyline {
		if flat == nil || flat.Line == nil {
			continue
		}
		targetID := flat.targetID()
		if targetID == "" {
			continue
		}
		snapshot.Flat = append(snapshot.Flat, schedule.FlatOddsLine{
			TeamID:    targetID,
			Moneyline: int(*flat.Line),
		})
	}
	return snapshot
}
