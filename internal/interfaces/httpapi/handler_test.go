package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/kprather/pickem-api/internal/domain/schedule"
	"github.com/kprather/pickem-api/internal/platform/logging"
	"github.com/kprather/pickem-api/internal/usecase"
)

type stubSource struct {
	mu          sync.Mutex
	snapshots   []schedule.EventSnapshot
	err         error
	calledURLs  []string
	calledYears []int
}

func (s *stubSource) ResolveSchedule(_ context.Context, startURL string, seasonYear int) ([]schedule.EventSnapshot, error) {
	s.mu.Lock()
	s.calledURLs = append(s.calledURLs, startURL)
	s.calledYears = append(s.calledYears, seasonYear)
	s.mu.Unlock()
	return s.snapshots, s.err
}

func (s *stubSource) ScoreboardURL() string { return "stub://scoreboard" }

func (s *stubSource) ScheduleURL(year, week int) string {
	return fmt.Sprintf("stub://seasons/%d/weeks/%d", year, week)
}

func newTestRouter(source *stubSource) http.Handler {
	logger := logging.NewNop()
	scheduleSvc := usecase.NewScheduleService(source, logger)
	oddsSvc := usecase.NewOddsService(scheduleSvc, logger)
	seasonSvc := usecase.NewSeasonService(scheduleSvc, logger)
	handler := NewHandler(scheduleSvc, oddsSvc, seasonSvc, 2025, logger)
	return NewRouter(handler, logger, []string{"*"}, "job-secret")
}

func testSnapshots() []schedule.EventSnapshot {
	homeLine := -180
	awayLine := 155
	return []schedule.EventSnapshot{{
		ID:          "1",
		Name:        "Away at Home",
		StatusState: "pre",
		Competition: schedule.CompetitionSnapshot{
			Competitors: []schedule.CompetitorSnapshot{
				{HomeAway: "home", TeamID: "10", TeamName: "Home"},
				{HomeAway: "away", TeamID: "20", TeamName: "Away"},
			},
			Odds: schedule.OddsSnapshot{HomeMoneyline: &homeLine, AwayMoneyline: &awayLine},
		},
	}}
}

func TestGetScoreboard_ReturnsGames(t *testing.T) {
	t.Parallel()

	source := &stubSource{snapshots: testSnapshots()}
	router := newTestRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       struct {
			Games []gameDTO `json:"games"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("unexpected apiVersion: %s", envelope.APIVersion)
	}
	if len(envelope.Data.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(envelope.Data.Games))
	}

	game := envelope.Data.Games[0]
	if game.Home.TeamName != "Home" || game.Away.TeamName != "Away" {
		t.Fatalf("unexpected teams: %+v", game)
	}
	if game.HomeOdds != "-180" || game.AwayOdds != "+155" {
		t.Fatalf("unexpected odds: %+v", game)
	}
	if game.Home.Score != "-" {
		t.Fatalf("upcoming game must show dash score, got %q", game.Home.Score)
	}
	// Record URLs are built from the season year even on the scoreboard
	// path, so the configured default must reach the resolver.
	if len(source.calledYears) != 1 || source.calledYears[0] != 2025 {
		t.Fatalf("default season year must reach the resolver: %v", source.calledYears)
	}
}

func TestGetScoreboard_WeekParamHitsSeasonEndpoint(t *testing.T) {
	t.Parallel()

	source := &stubSource{snapshots: testSnapshots()}
	router := newTestRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard?week=7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if len(source.calledURLs) != 1 || source.calledURLs[0] != "stub://seasons/2025/weeks/7" {
		t.Fatalf("default year must apply to the week endpoint: %v", source.calledURLs)
	}
}

func TestGetScoreboard_RejectsMalformedQuery(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubSource{snapshots: testSnapshots()})

	for _, query := range []string{"?week=abc", "?year=17", "?week=99"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestGetScoreboard_EmptyScheduleIs404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetRankings_ReturnsRankedGames(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubSource{snapshots: testSnapshots()})

	req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data usecase.RankingsResult `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Ranked) != 1 {
		t.Fatalf("expected 1 ranked game, got %d", len(envelope.Data.Ranked))
	}
	if envelope.Data.Ranked[0].ExpectedWinner != "Home" {
		t.Fatalf("unexpected winner: %s", envelope.Data.Ranked[0].ExpectedWinner)
	}
}

func TestRunResolveSeasonJob_RequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubSource{snapshots: testSnapshots()})

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/resolve-season", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRunResolveSeasonJob_ResolvesRequestedWeeks(t *testing.T) {
	t.Parallel()

	source := &stubSource{snapshots: testSnapshots()}
	router := newTestRouter(source)

	body := `{"weeks":[1,2],"max_workers":2}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/resolve-season", strings.NewReader(body))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data usecase.SeasonResolveResult `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SeasonYear != 2025 {
		t.Fatalf("default season year must apply, got %d", envelope.Data.SeasonYear)
	}
	if envelope.Data.WeekCount != 2 || envelope.Data.SuccessCount != 2 {
		t.Fatalf("unexpected result: %+v", envelope.Data)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz must return 200, got %d", rec.Code)
	}
}
