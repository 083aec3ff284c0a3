package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/kprather/pickem-api/internal/usecase"
)

type resolveSeasonRequest struct {
	SeasonYear int   `json:"season_year" validate:"omitempty,gte=1990,lte=2100"`
	Weeks      []int `json:"weeks" validate:"omitempty,dive,gte=1,lte=23"`
	MaxWorkers int   `json:"max_workers" validate:"omitempty,gte=1,lte=16"`
}

func (h *Handler) RunResolveSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResolveSeasonJob")
	defer span.End()

	var request resolveSeasonRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &request); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: malformed request body", usecase.ErrInvalidInput))
			return
		}
	}
	if err := h.validator.Struct(request); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error()))
		return
	}

	if request.SeasonYear == 0 {
		request.SeasonYear = h.defaultYear
	}

	result, err := h.seasonService.ResolveSeason(ctx, usecase.SeasonResolveInput{
		SeasonYear: request.SeasonYear,
		Weeks:      request.Weeks,
		MaxWorkers: request.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve season job failed", "year", request.SeasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
