package espn

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/kprather/pickem-api/internal/domain/schedule"
)

// ResolveSchedule fetches the schedule entry point at startURL and expands
// its deferred references tier by tier. Phases run concurrently inside
// themselves and join fully before the next phase starts; a failed leaf
// fetch degrades that event instead of failing the whole resolution.
//
// Phase 0 inflates bare event references and drops events that stay
// structurally unusable. Phase 1 resolves team identities. Phase 2 fans out
// per-event odds, status, record, and score fetches, then applies the
// collected patches sequentially so no two goroutines ever write the same
// event.
func (c *Client) ResolveSchedule(ctx context.Context, startURL string, seasonYear int) ([]schedule.EventSnapshot, error) {
	var envelope scheduleEnvelope
	if err := c.fetchJSON(ctx, startURL, &envelope); err != nil {
		return nil, err
	}

	events := c.resolveEventRefs(ctx, envelope.events())
	c.resolveTeamIdentities(ctx, events)
	c.resolveEventDetails(ctx, events, seasonYear)

	return c.snapshots(events), nil
}

// resolveEventRefs is phase 0: events that arrived as bare references are
// fetched in place. Events that still lack a competition with two
// competitors afterwards are dropped.
func (c *Client) resolveEventRefs(ctx context.Context, events []*Event) []*Event {
	fetchers := pool.New().WithMaxGoroutines(c.phaseConcurrency)
	for _, ev := range events {
		ev := ev
		if ev == nil || ev.resolved() || strings.TrimSpace(ev.Ref) == "" {
			continue
		}
		fetchers.Go(func() {
			var full Event
			if err := c.fetchJSON(ctx, ev.Ref, &full); err != nil {
				c.logger.WarnContext(ctx, "espn event reference unresolved", "ref", ev.Ref, "error", err)
				return
			}
			mergeEvent(ev, &full)
		})
	}
	fetchers.Wait()

	kept := events[:0]
	for _, ev := range events {
		if ev == nil || !ev.resolved() {
			continue
		}
		if !ev.Competitions[0].valid() {
			c.logger.DebugContext(ctx, "espn event dropped, incomplete competition", "event_id", ev.ID)
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// resolveTeamIdentities is phase 1: every competitor whose team is still a
// bare reference gets its identity fetched. Each goroutine owns exactly one
// team pointer, so merges need no locking.
func (c *Client) resolveTeamIdentities(ctx context.Context, events []*Event) {
	fetchers := pool.New().WithMaxGoroutines(c.phaseConcurrency)
	for _, ev := range events {
		for _, comp := range ev.Competitions {
			for _, competitor := range comp.Competitors {
				team := competitor.Team
				if team == nil || !team.needsResolution() {
					continue
				}
				fetchers.Go(func() {
					var full Team
					if err := c.fetchJSON(ctx, team.Ref, &full); err != nil {
						c.logger.WarnContext(ctx, "espn team reference unresolved", "ref", team.Ref, "error", err)
						return
					}
					mergeTeam(team, &full)
				})
			}
		}
	}
	fetchers.Wait()
}

type detailKind int

const (
	detailOdds detailKind = iota
	detailStatus
	detailRecord
	detailScore
)

type detailTask struct {
	kind       detailKind
	url        string
	event      *Event
	comp       *Competition
	competitor *Competitor
}

type detailPatch struct {
	task    detailTask
	odds    []*OddsEntry
	status  *Status
	summary string
	score   *Score
}

// resolveEventDetails is phase 2: per-event odds, status, record, and score
// fetches. Fetches run concurrently and emit patches; every patch is
// applied on this goroutine after the pool joins.
func (c *Client) resolveEventDetails(ctx context.Context, events []*Event, seasonYear int) {
	tasks := c.collectDetailTasks(ctx, events, seasonYear)
	if len(tasks) == 0 {
		return
	}

	patches := make(chan detailPatch, len(tasks))
	fetchers := pool.New().WithMaxGoroutines(c.phaseConcurrency)
	for _, task := range tasks {
		task := task
		fetchers.Go(func() {
			patch, ok := c.fetchDetail(ctx, task)
			if ok {
				patches <- patch
			}
		})
	}
	fetchers.Wait()
	close(patches)

	for patch := range patches {
		c.applyDetailPatch(patch)
	}
}

func (c *Client) collectDetailTasks(ctx context.Context, events []*Event, seasonYear int) []detailTask {
	var tasks []detailTask
	for _, ev := range events {
		comp := ev.Competitions[0]

		// Status is always refreshed through its canonical URL so a stale
		// inline scoreboard state cannot mask a live one; the fetch only
		// patches when it yields a non-empty state.
		statusURL := c.eventStatusURL(ev.ID, comp.ID)
		if statusURL == "" && ev.Status != nil {
			statusURL = ev.Status.Ref
		}
		if statusURL == "" {
			c.logger.DebugContext(ctx, "espn status url unavailable", "event_id", ev.ID)
		} else {
			tasks = append(tasks, detailTask{kind: detailStatus, url: statusURL, event: ev})
		}

		if comp.Odds == nil || len(comp.Odds.Entries) == 0 {
			url := ""
			if comp.Odds != nil && comp.Odds.Ref != "" {
				url = comp.Odds.Ref
			} else {
				url = c.eventOddsURL(ev.ID, comp.ID)
			}
			if url == "" {
				c.logger.DebugContext(ctx, "espn odds url unavailable", "event_id", ev.ID)
			} else {
				tasks = append(tasks, detailTask{kind: detailOdds, url: url, event: ev, comp: comp})
			}
		}

		for _, competitor := range comp.Competitors {
			if competitor == nil {
				continue
			}
			if !hasTotalRecord(competitor) {
				teamID := ""
				if competitor.Team != nil {
					teamID = competitor.Team.ID
				}
				url := c.teamRecordURL(seasonYear, teamID)
				if url == "" {
					c.logger.DebugContext(ctx, "espn record url unavailable", "event_id", ev.ID, "team_id", teamID)
				} else {
					tasks = append(tasks, detailTask{kind: detailRecord, url: url, event: ev, competitor: competitor})
				}
			}
			if competitor.Score.isRef() {
				tasks = append(tasks, detailTask{kind: detailScore, url: competitor.Score.Ref, event: ev, competitor: competitor})
			}
		}
	}
	return tasks
}

func (c *Client) fetchDetail(ctx context.Context, task detailTask) (detailPatch, bool) {
	patch := detailPatch{task: task}

	switch task.kind {
	case detailOdds:
		var envelope oddsEnvelope
		if err := c.fetchJSON(ctx, task.url, &envelope); err != nil {
			c.logger.WarnContext(ctx, "espn odds fetch failed", "url", task.url, "error", err)
			return detailPatch{}, false
		}
		if len(envelope.Items) == 0 {
			return detailPatch{}, false
		}
		patch.odds = envelope.Items
	case detailStatus:
		var status Status
		if err := c.fetchJSON(ctx, task.url, &status); err != nil {
			c.logger.WarnContext(ctx, "espn status fetch failed", "url", task.url, "error", err)
			return detailPatch{}, false
		}
		if strings.TrimSpace(status.Type.State) == "" {
			return detailPatch{}, false
		}
		patch.status = &status
	case detailRecord:
		var envelope recordEnvelope
		if err := c.fetchJSON(ctx, task.url, &envelope); err != nil {
			c.logger.WarnContext(ctx, "espn record fetch failed", "url", task.url, "error", err)
			return detailPatch{}, false
		}
		summary := totalRecordSummary(envelope.Items)
		if summary == "" {
			return detailPatch{}, false
		}
		patch.summary = summary
	case detailScore:
		var score Score
		if err := c.fetchJSON(ctx, task.url, &score); err != nil {
			c.logger.WarnContext(ctx, "espn score fetch failed", "url", task.url, "error", err)
			return detailPatch{}, false
		}
		patch.score = &score
	}
	return patch, true
}

func (c *Client) applyDetailPatch(patch detailPatch) {
	switch patch.task.kind {
	case detailOdds:
		comp := patch.task.comp
		if comp.Odds == nil {
			comp.Odds = &OddsSource{}
		}
		comp.Odds.Entries = patch.odds
	case detailStatus:
		patch.task.event.Status = patch.status
	case detailRecord:
		patchTotalRecord(patch.task.competitor.Team, patch.summary)
	case detailScore:
		// A score that resolved inline in an earlier merge wins over a
		// late patch.
		if patch.task.competitor.Score.isRef() {
			patch.task.competitor.Score = patch.score
		}
	}
}

func hasTotalRecord(competitor *Competitor) bool {
	for _, record := range competitor.Records {
		if record.isTotal() && record.summary() != "" {
			return true
		}
	}
	if competitor.Team != nil {
		for _, record := range competitor.Team.Records {
			if record.isTotal() && record.summary() != "" {
				return true
			}
		}
	}
	return false
}

func totalRecordSummary(records []*Record) string {
	for _, record := range records {
		if record.isTotal() && record.summary() != "" {
			return record.summary()
		}
	}
	for _, record := range records {
		if record.summary() != "" {
			return record.summary()
		}
	}
	return ""
}
