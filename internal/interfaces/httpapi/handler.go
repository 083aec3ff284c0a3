package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kprather/pickem-api/internal/platform/logging"
	"github.com/kprather/pickem-api/internal/usecase"
)

type Handler struct {
	scheduleService *usecase.ScheduleService
	oddsService     *usecase.OddsService
	seasonService   *usecase.SeasonService
	defaultYear     int
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	oddsService *usecase.OddsService,
	seasonService *usecase.SeasonService,
	defaultYear int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scheduleService: scheduleService,
		oddsService:     oddsService,
		seasonService:   seasonService,
		defaultYear:     defaultYear,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
