package app

import (
	"fmt"
	"net/http"

	"github.com/kprather/pickem-api/external/espn"
	"github.com/kprather/pickem-api/internal/config"
	"github.com/kprather/pickem-api/internal/interfaces/httpapi"
	"github.com/kprather/pickem-api/internal/platform/logging"
	"github.com/kprather/pickem-api/internal/platform/resilience"
	"github.com/kprather/pickem-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	espnClient := espn.NewClient(espn.ClientConfig{
		SiteBaseURL:      cfg.ESPNSiteBaseURL,
		CoreBaseURL:      cfg.ESPNCoreBaseURL,
		Timeout:          cfg.ESPNTimeout,
		MaxAttempts:      cfg.ESPNMaxAttempts,
		BackoffInitial:   cfg.ESPNBackoffInitial,
		BackoffMax:       cfg.ESPNBackoffMax,
		PhaseConcurrency: cfg.ESPNPhaseConcurrency,
		Logger:           logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMax,
		},
	})

	scheduleSvc := usecase.NewScheduleService(espnClient, logger)
	oddsSvc := usecase.NewOddsService(scheduleSvc, logger)
	seasonSvc := usecase.NewSeasonService(scheduleSvc, logger)

	handler := httpapi.NewHandler(scheduleSvc, oddsSvc, seasonSvc, cfg.DefaultSeasonYear, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
