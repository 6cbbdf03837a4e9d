package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/rsl-league/tournament-api/internal/usecase"
)

type castVoteRequest struct {
	PlayerID int    `json:"player_id" validate:"required,gt=0"`
	DeviceID string `json:"device_id" validate:"required,max=128"`
}

func (h *Handler) ListAwards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAwards")
	defer span.End()

	awards, err := h.voteService.ListAwards(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list awards failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]awardSummaryDTO, 0, len(awards))
	for _, award := range awards {
		out = append(out, awardSummaryToDTO(award))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	award, err := usecase.ParseAward(r.PathValue("award"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req castVoteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.voteService.Cast(ctx, award, req.DeviceID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "cast vote failed", "award", award, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handler) GetVoteCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVoteCounts")
	defer span.End()

	award, err := usecase.ParseAward(r.PathValue("award"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	counts, err := h.voteService.Counts(ctx, award)
	if err != nil {
		h.logger.WarnContext(ctx, "get vote counts failed", "award", award, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, voteCountsToDTO(counts))
}

// StreamVoteCounts pushes tally refreshes as server-sent events. The current
// tally goes out immediately; afterwards the client sees every poller
// refresh until it disconnects.
func (h *Handler) StreamVoteCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamVoteCounts")
	defer span.End()

	award, err := usecase.ParseAward(r.PathValue("award"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: streaming unsupported by connection", usecase.ErrInvalidInput))
		return
	}

	// Prime the tally first so Subscribe can hand the current snapshot to the
	// client right away.
	if _, err := h.voteService.Counts(ctx, award); err != nil {
		h.logger.WarnContext(ctx, "priming vote counts failed", "award", award, "error", err)
	}

	updates, cancel := h.voteService.Subscribe(award)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case <-ctx.Done():
			return
		case counts, open := <-updates:
			if !open {
				return
			}
			h.writeCountsEvent(w, counts)
			flusher.Flush()
		}
	}
}

func (h *Handler) writeCountsEvent(w http.ResponseWriter, counts usecase.VoteCounts) {
	payload, err := sonic.Marshal(voteCountsToDTO(counts))
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: counts\ndata: %s\n\n", payload)
}

func (h *Handler) GetAwardResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAwardResult")
	defer span.End()

	award, err := usecase.ParseAward(r.PathValue("award"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.voteService.Result(ctx, award)
	if err != nil {
		h.logger.WarnContext(ctx, "award result failed", "award", award, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, awardResultDTO{
		Award:        string(result.Award),
		Winner:       playerToDTO(result.Winner),
		Votes:        result.Votes,
		TotalVotes:   result.TotalVotes,
		FromFallback: result.FromFallback,
	})
}
