package httpapi

import "net/http"

func (h *Handler) GetBestXI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBestXI")
	defer span.End()

	squads, err := h.bestXIService.Squads(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "best xi selection failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bestSquadsDTO{
		First:  squadToDTO(squads.First),
		Second: squadToDTO(squads.Second),
	})
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	snap, err := h.statsService.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}

func (h *Handler) GetTransferWindow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTransferWindow")
	defer span.End()

	proposal, err := h.transferService.Window(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer window failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferProposalToDTO(proposal))
}
