package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rsl-league/tournament-api/external/firedb"
	"github.com/rsl-league/tournament-api/internal/config"
	"github.com/rsl-league/tournament-api/internal/infrastructure/repository/memory"
	"github.com/rsl-league/tournament-api/internal/interfaces/httpapi"
	"github.com/rsl-league/tournament-api/internal/platform/cache"
	"github.com/rsl-league/tournament-api/internal/platform/logging"
	"github.com/rsl-league/tournament-api/internal/platform/resilience"
	"github.com/rsl-league/tournament-api/internal/usecase"
)

// App bundles the HTTP server with the background vote poller so main can
// start and stop both from one place.
type App struct {
	Server *http.Server

	voteService *usecase.VoteService
	logger      *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	teams := memory.SeedTeams()
	players := memory.SeedPlayers()
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("seed team %q: %w", t.Name, err)
		}
	}
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed player %d: %w", p.ID, err)
		}
	}

	ratingSvc := usecase.NewRatingService(cfg.RatingMaxWorkers)
	rated, err := ratingSvc.MaterializeRatings(context.Background(), teams, players)
	if err != nil {
		return nil, fmt.Errorf("materialize ratings: %w", err)
	}

	teamRepo := memory.NewTeamRepository(teams)
	playerRepo := memory.NewPlayerRepository(rated)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	voteCfg := usecase.VoteConfig{
		VotingStart:  cfg.VotingStart,
		ResultsAt:    cfg.ResultsAt,
		PollInterval: cfg.VotePollInterval,
	}
	if voteCfg.ResultsAt.IsZero() {
		voteCfg.ResultsAt = usecase.NextSundayNoon(time.Now())
	}

	var backend usecase.VoteBackend
	if cfg.FireDBBaseURL != "" {
		backend = firedb.NewClient(firedb.ClientConfig{
			BaseURL:    cfg.FireDBBaseURL,
			AuthToken:  cfg.FireDBAuthToken,
			Timeout:    cfg.FireDBTimeout,
			MaxRetries: cfg.FireDBMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FireDBCircuitEnabled,
				FailureThreshold: cfg.FireDBCircuitFailureCount,
				OpenTimeout:      cfg.FireDBCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FireDBCircuitHalfOpenMaxReq,
			},
		}, logger)
		logger.Info("vote backend configured", "kind", "firedb", "base_url", cfg.FireDBBaseURL)
	} else {
		backend = memory.NewVoteRepository()
		logger.Info("vote backend configured", "kind", "memory")
	}

	voteSvc := usecase.NewVoteService(playerRepo, backend, voteCfg, logger)

	handler := httpapi.NewHandler(
		usecase.NewStandingService(teamRepo),
		usecase.NewTeamService(teamRepo, playerRepo),
		usecase.NewPlayerService(playerRepo),
		usecase.NewBestXIService(playerRepo, store),
		usecase.NewStatsService(teamRepo, playerRepo),
		usecase.NewTransferService(teamRepo, playerRepo),
		voteSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:      server,
		voteService: voteSvc,
		logger:      logger,
	}, nil
}

// StartVotePoller runs the award tally poller until ctx is cancelled.
func (a *App) StartVotePoller(ctx context.Context) {
	go func() {
		a.logger.Info("vote poller starting")
		a.voteService.RunPoller(ctx)
		a.logger.Info("vote poller stopped")
	}()
}
