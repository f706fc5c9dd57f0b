package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}/fee-rates", handler.UpdateFeeRates)
	mux.HandleFunc("PUT /v1/matches/{matchID}/attendance", handler.SaveMatchAttendance)
	mux.HandleFunc("POST /v1/matches/{matchID}/import", handler.ImportMatchFees)
	mux.HandleFunc("POST /v1/matches/{matchID}/events", handler.RecordMatchEvent)
}

func registerFeeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/fees", handler.GetFeeBreakdown)
	mux.HandleFunc("GET /v1/matches/{matchID}/fees/statistics", handler.GetOverrideStatistics)
	mux.HandleFunc("GET /v1/matches/{matchID}/fees/anomalies", handler.ListFeeAnomalies)
	mux.HandleFunc("PUT /v1/matches/{matchID}/fees/overrides", handler.ApplyBulkOverrides)
	mux.HandleFunc("PUT /v1/matches/{matchID}/fees/overrides/{playerID}", handler.ApplyOverride)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/fees/overrides/{playerID}", handler.ClearOverride)
}
