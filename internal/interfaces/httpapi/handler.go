package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rsl-league/tournament-api/internal/platform/logging"
	"github.com/rsl-league/tournament-api/internal/usecase"
)

type Handler struct {
	standingService *usecase.StandingService
	teamService     *usecase.TeamService
	playerService   *usecase.PlayerService
	bestXIService   *usecase.BestXIService
	statsService    *usecase.StatsService
	transferService *usecase.TransferService
	voteService     *usecase.VoteService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	standingService *usecase.StandingService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	bestXIService *usecase.BestXIService,
	statsService *usecase.StatsService,
	transferService *usecase.TransferService,
	voteService *usecase.VoteService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingService: standingService,
		teamService:     teamService,
		playerService:   playerService,
		bestXIService:   bestXIService,
		statsService:    statsService,
		transferService: transferService,
		voteService:     voteService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
