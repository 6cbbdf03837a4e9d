package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/rsl-league/tournament-api/internal/infrastructure/repository/memory"
	"github.com/rsl-league/tournament-api/internal/platform/cache"
	"github.com/rsl-league/tournament-api/internal/platform/logging"
	"github.com/rsl-league/tournament-api/internal/usecase"
)

func newTestRouter(t *testing.T, voteCfg usecase.VoteConfig) http.Handler {
	t.Helper()

	ratingService := usecase.NewRatingService(4)
	rated, err := ratingService.MaterializeRatings(context.Background(), memory.SeedTeams(), memory.SeedPlayers())
	if err != nil {
		t.Fatalf("materialize ratings: %v", err)
	}

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(rated)
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewStandingService(teamRepo),
		usecase.NewTeamService(teamRepo, playerRepo),
		usecase.NewPlayerService(playerRepo),
		usecase.NewBestXIService(playerRepo, cache.NewStore(time.Minute)),
		usecase.NewStatsService(teamRepo, playerRepo),
		usecase.NewTransferService(teamRepo, playerRepo),
		usecase.NewVoteService(playerRepo, memory.NewVoteRepository(), voteCfg, logger),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"})
}

func votingOpenConfig() usecase.VoteConfig {
	return usecase.VoteConfig{
		VotingStart: time.Now().Add(-time.Hour),
		ResultsAt:   time.Now().Add(time.Hour),
	}
}

func resultsOpenConfig() usecase.VoteConfig {
	return usecase.VoteConfig{
		VotingStart: time.Now().Add(-2 * time.Hour),
		ResultsAt:   time.Now().Add(-time.Hour),
	}
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal envelope from %s %s: %v", method, target, err)
		}
	}

	return rec, envelope
}

func dataSlice(t *testing.T, envelope map[string]any) []any {
	t.Helper()
	out, ok := envelope["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %T", envelope["data"])
	}
	return out
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	out, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", envelope["data"])
	}
	return out
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := dataObject(t, envelope)["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", got)
	}
}

func TestRouter_ListStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/standings", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rows := dataSlice(t, envelope)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantOrder := []string{"Red Wolves", "FC Thunder", "Green Eagles"}
	for i, want := range wantOrder {
		row := rows[i].(map[string]any)
		teamObj := row["team"].(map[string]any)
		if teamObj["name"] != want {
			t.Fatalf("position %d: got %v, want %s", i+1, teamObj["name"], want)
		}
		if int(row["position"].(float64)) != i+1 {
			t.Fatalf("position field mismatch at index %d: %+v", i, row)
		}
	}
}

func TestRouter_DefensiveStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/standings/defense", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rows := dataSlice(t, envelope)
	first := rows[0].(map[string]any)["team"].(map[string]any)
	if first["name"] != "FC Thunder" {
		t.Fatalf("best defense = %v, want FC Thunder", first["name"])
	}
}

func TestRouter_GetTeam(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/FC%20Thunder", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	teamObj := dataObject(t, envelope)
	if teamObj["emoji"] != "⚡" || int(teamObj["points"].(float64)) != 10 {
		t.Fatalf("unexpected team payload: %+v", teamObj)
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/teams/Blue%20Sharks", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if envelope["error"] == nil {
		t.Fatal("expected error envelope")
	}
}

func TestRouter_GetTeamLineup(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/FC%20Thunder/lineup", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	lineup := dataSlice(t, envelope)
	if len(lineup) != 4 {
		t.Fatalf("expected 4 players, got %d", len(lineup))
	}
	if first := lineup[0].(map[string]any); first["position"] != "Forward" || int(first["id"].(float64)) != 1 {
		t.Fatalf("unexpected first lineup entry: %+v", first)
	}
}

func TestRouter_GetPlayer(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/players/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := dataObject(t, envelope)
	if p["name"] != "Carlos Rivera" || p["rating"].(float64) != 10.0 {
		t.Fatalf("unexpected player payload: %+v", p)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/players/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/players/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_Leaderboard(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/leaderboards/goals?limit=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entries := dataSlice(t, envelope)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	top := entries[0].(map[string]any)
	if int(top["value"].(float64)) != 18 {
		t.Fatalf("unexpected top scorer value: %+v", top)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/leaderboards/ownGoals", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_BestXI(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/best-xi", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := dataObject(t, envelope)
	first := data["first"].([]any)
	second := data["second"].([]any)
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("expected two squads of 4, got %d and %d", len(first), len(second))
	}

	seen := map[int]struct{}{}
	for _, raw := range append(first, second...) {
		pick := raw.(map[string]any)
		id := int(pick["player"].(map[string]any)["id"].(float64))
		if _, dup := seen[id]; dup {
			t.Fatalf("player %d appears in both squads", id)
		}
		seen[id] = struct{}{}
	}
}

func TestRouter_Snapshot(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/snapshot", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snap := dataObject(t, envelope)
	if int(snap["total_goals"].(float64)) != 31 {
		t.Fatalf("total_goals = %v, want 31", snap["total_goals"])
	}
	best := snap["best_defense"].(map[string]any)["team"].(map[string]any)
	if best["name"] != "FC Thunder" {
		t.Fatalf("best defense = %v", best["name"])
	}
}

func TestRouter_TransferWindow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/transfer-window", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := dataObject(t, envelope)
	if int(data["leaving_top"].(map[string]any)["id"].(float64)) != 8 {
		t.Fatalf("unexpected leaving_top: %+v", data["leaving_top"])
	}
	if int(data["leaving_bottom"].(map[string]any)["id"].(float64)) != 11 {
		t.Fatalf("unexpected leaving_bottom: %+v", data["leaving_bottom"])
	}
	if data["remaining_seconds"].(float64) <= 0 {
		t.Fatalf("expected positive remaining_seconds, got %v", data["remaining_seconds"])
	}
}

func TestRouter_CastVote(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/awards/rsl_ballon_dor_vote/votes",
		`{"player_id": 1, "device_id": "device-1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/awards/rsl_ballon_dor_vote/votes",
		`{"player_id": 999, "device_id": "device-1"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/awards/rsl_ballon_dor_vote/votes",
		`{"player_id": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/awards/golden_boot/votes",
		`{"player_id": 1, "device_id": "device-1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_CastVote_ClosedPhase(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, resultsOpenConfig())

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/awards/rsl_ballon_dor_vote/votes",
		`{"player_id": 1, "device_id": "device-1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRouter_VoteCountsAndResult(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, resultsOpenConfig())

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/awards/rsl_ballon_dor_vote/counts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if int(dataObject(t, envelope)["total"].(float64)) != 0 {
		t.Fatalf("expected empty tally, got %+v", envelope)
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/awards/rsl_ballon_dor_vote/result", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := dataObject(t, envelope)
	if result["from_fallback"] != true {
		t.Fatalf("expected fallback result, got %+v", result)
	}
	if int(result["winner"].(map[string]any)["id"].(float64)) != 1 {
		t.Fatalf("unexpected fallback winner: %+v", result["winner"])
	}
}

func TestRouter_AwardResult_BeforeResultsPhase(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/awards/rsl_ballon_dor_vote/result", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRouter_StreamVoteCounts_FirstEvent(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/awards/rsl_ballon_dor_vote/counts/stream", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(rec, req)
		close(done)
	}()

	// The current tally is pushed on connect, before any poller tick, so a
	// short window is enough to observe the first frame.
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event: counts") || !strings.Contains(body, "data: ") {
		t.Fatalf("missing first event, body: %q", body)
	}
}

func TestRouter_ListAwards(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, votingOpenConfig())
	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/awards", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	awards := dataSlice(t, envelope)
	if len(awards) != 2 {
		t.Fatalf("expected 2 awards, got %d", len(awards))
	}
	first := awards[0].(map[string]any)
	if first["award"] != "rsl_ballon_dor_vote" || first["phase"] != "voting" {
		t.Fatalf("unexpected award summary: %+v", first)
	}
}
