package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rsl-league/tournament-api/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	raw := r.PathValue("playerID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id %q is not a number", usecase.ErrInvalidInput, raw))
		return
	}

	p, err := h.playerService.GetByID(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	category := usecase.LeaderboardCategory(strings.ToLower(r.PathValue("category")))

	limit := 0
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit %q is not a non-negative number", usecase.ErrInvalidInput, rawLimit))
			return
		}
		limit = parsed
	}

	entries, err := h.playerService.Leaderboard(ctx, category, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:   entry.Rank,
			Value:  entry.Value,
			Player: playerToDTO(entry.Player),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
