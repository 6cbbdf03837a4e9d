package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/standings/defense", handler.ListDefensiveStandings)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{name}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{name}/lineup", handler.GetTeamLineup)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/leaderboards/{category}", handler.GetLeaderboard)

	mux.HandleFunc("GET /v1/best-xi", handler.GetBestXI)
	mux.HandleFunc("GET /v1/snapshot", handler.GetSnapshot)
	mux.HandleFunc("GET /v1/transfer-window", handler.GetTransferWindow)

	mux.HandleFunc("GET /v1/awards", handler.ListAwards)
	mux.HandleFunc("POST /v1/awards/{award}/votes", handler.CastVote)
	mux.HandleFunc("GET /v1/awards/{award}/counts", handler.GetVoteCounts)
	mux.HandleFunc("GET /v1/awards/{award}/counts/stream", handler.StreamVoteCounts)
	mux.HandleFunc("GET /v1/awards/{award}/result", handler.GetAwardResult)
}
