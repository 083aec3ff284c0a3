package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("GET /v1/rankings", handler.GetRankings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/resolve-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResolveSeasonJob)))
}
