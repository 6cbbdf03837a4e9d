package httpapi

import "net/http"

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	name := r.PathValue("name")

	t, err := h.teamService.GetByName(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) GetTeamLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLineup")
	defer span.End()

	name := r.PathValue("name")

	lineup, err := h.teamService.Lineup(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get team lineup failed", "team", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(lineup))
}
