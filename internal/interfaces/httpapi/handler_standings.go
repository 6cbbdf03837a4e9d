package httpapi

import "net/http"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.standingService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(rows))
}

func (h *Handler) ListDefensiveStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDefensiveStandings")
	defer span.End()

	rows, err := h.standingService.DefenseTable(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list defensive standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingRowsToDTO(rows))
}
