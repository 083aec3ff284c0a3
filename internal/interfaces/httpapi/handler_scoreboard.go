package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kprather/pickem-api/internal/domain/schedule"
	"github.com/kprather/pickem-api/internal/usecase"
)

type scoreboardQuery struct {
	Year int `validate:"omitempty,gte=1990,lte=2100"`
	Week int `validate:"omitempty,gte=1,lte=23"`
}

func (h *Handler) parseScoreboardQuery(r *http.Request) (scoreboardQuery, error) {
	query := scoreboardQuery{}

	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return scoreboardQuery{}, fmt.Errorf("%w: year must be an integer", usecase.ErrInvalidInput)
		}
		query.Year = year
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			return scoreboardQuery{}, fmt.Errorf("%w: week must be an integer", usecase.ErrInvalidInput)
		}
		query.Week = week
	}

	if err := h.validator.Struct(query); err != nil {
		return scoreboardQuery{}, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error())
	}

	// The season year feeds the record tier URLs on every path, so the
	// configured default always fills in when the caller omits it.
	if query.Year == 0 {
		query.Year = h.defaultYear
	}
	return query, nil
}

type gameSideDTO struct {
	TeamID        string `json:"teamId,omitempty"`
	TeamName      string `json:"teamName"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	LogoURL       string `json:"logo,omitempty"`
	RecordSummary string `json:"record,omitempty"`
	Score         string `json:"score"`
	Status        string `json:"status"`
}

type gameDTO struct {
	EventID   string      `json:"eventId"`
	Name      string      `json:"name"`
	ShortName string      `json:"shortName,omitempty"`
	Date      string      `json:"date,omitempty"`
	Home      gameSideDTO `json:"home"`
	Away      gameSideDTO `json:"away"`
	HomeOdds  string      `json:"homeOdds"`
	AwayOdds  string      `json:"awayOdds"`
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	query, err := h.parseScoreboardQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scheduleService.ResolveSchedule(ctx, usecase.ResolveInput{
		SeasonYear: query.Year,
		Week:       query.Week,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve scoreboard failed", "year", query.Year, "week", query.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	payload := make([]gameDTO, 0, len(games))
	for _, game := range games {
		payload = append(payload, toGameDTO(game))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"games": payload})
}

func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRankings")
	defer span.End()

	query, err := h.parseScoreboardQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsService.RankCurrentOdds(ctx, usecase.ResolveInput{
		SeasonYear: query.Year,
		Week:       query.Week,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "rank odds failed", "year", query.Year, "week", query.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func toGameDTO(game schedule.Game) gameDTO {
	return gameDTO{
		EventID:   game.EventID,
		Name:      game.Name,
		ShortName: game.ShortName,
		Date:      game.Date,
		Home:      toGameSideDTO(game.Home),
		Away:      toGameSideDTO(game.Away),
		HomeOdds:  game.HomeOdds,
		AwayOdds:  game.AwayOdds,
	}
}

func toGameSideDTO(side schedule.GameSide) gameSideDTO {
	return gameSideDTO{
		TeamID:        side.TeamID,
		TeamName:      side.TeamName,
		Abbreviation:  side.Abbreviation,
		LogoURL:       side.LogoURL,
		RecordSummary: side.RecordSummary,
		Score:         side.Score,
		Status:        side.Status,
	}
}
