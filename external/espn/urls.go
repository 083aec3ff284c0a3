package espn

import (
	"fmt"
	"strings"
)

const (
	defaultSiteBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultCoreBaseURL = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"
)

// ScoreboardURL is the entry point for the current week's schedule.
func (c *Client) ScoreboardURL() string {
	return c.siteBaseURL + "/scoreboard"
}

// ScheduleURL is the entry point for a specific regular-season week. The
// endpoint returns sparse event references that the resolver expands.
func (c *Client) ScheduleURL(year, week int) string {
	return fmt.Sprintf("%s/seasons/%d/types/2/weeks/%d/events", c.coreBaseURL, year, week)
}

func (c *Client) eventOddsURL(eventID, competitionID string) string {
	if eventID == "" || competitionID == "" {
		return ""
	}
	return fmt.Sprintf("%s/events/%s/competitions/%s/odds", c.coreBaseURL, eventID, competitionID)
}

func (c *Client) eventStatusURL(eventID, competitionID string) string {
	if eventID == "" || competitionID == "" {
		return ""
	}
	return fmt.Sprintf("%s/events/%s/competitions/%s/status", c.coreBaseURL, eventID, competitionID)
}

func (c *Client) teamRecordURL(year int, teamID string) string {
	if year <= 0 || teamID == "" {
		return ""
	}
	return fmt.Sprintf("%s/seasons/%d/types/2/teams/%s/record", c.coreBaseURL, year, teamID)
}

// secureURL upgrades plain-http reference URLs before fetching. The
// provider still emits http:// refs in some tiers even though the hosts
// only serve https.
func (c *Client) secureURL(ref string) string {
	if c.allowInsecureRefs {
		return ref
	}
	if strings.HasPrefix(ref, "http://") {
		return "https://" + strings.TrimPrefix(ref, "http://")
	}
	return ref
}

// idFromRef extracts the trailing path identifier from a reference URL,
// e.g. ".../teams/12?lang=en" -> "12".
func idFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if idx := strings.IndexAny(ref, "?#"); idx >= 0 {
		ref = ref[:idx]
	}
	ref = strings.TrimRight(ref, "/")
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		ref = ref[idx+1:]
	}
	return ref
}
