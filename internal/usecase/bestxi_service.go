package usecase

import (
	"context"
	"fmt"

	"github.com/rsl-league/tournament-api/internal/domain/bestxi"
	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/platform/cache"
)

const bestXICacheKey = "bestxi:squads"

// BestSquads is the pair of disjoint best-of-tournament selections.
type BestSquads struct {
	First  bestxi.Squad
	Second bestxi.Squad
}

// BestXIService derives the two tournament squads from the player pool. The
// pool never changes after seed, so the result is cached behind a loader that
// collapses concurrent misses to one selection run.
type BestXIService struct {
	playerRepo player.Repository
	cache      *cache.Store
}

func NewBestXIService(playerRepo player.Repository, store *cache.Store) *BestXIService {
	return &BestXIService{
		playerRepo: playerRepo,
		cache:      store,
	}
}

func (s *BestXIService) Squads(ctx context.Context) (BestSquads, error) {
	ctx, span := startUsecaseSpan(ctx, "BestXIService.Squads")
	defer span.End()

	if s.cache == nil {
		return s.selectSquads(ctx)
	}

	out, err := s.cache.GetOrLoad(ctx, bestXICacheKey, func(ctx context.Context) (any, error) {
		return s.selectSquads(ctx)
	})
	if err != nil {
		return BestSquads{}, err
	}

	squads, ok := out.(BestSquads)
	if !ok {
		return BestSquads{}, fmt.Errorf("unexpected cached squads type %T", out)
	}

	return squads, nil
}

func (s *BestXIService) selectSquads(ctx context.Context) (BestSquads, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return BestSquads{}, fmt.Errorf("list players: %w", err)
	}

	first, second := bestxi.SelectSquads(players)
	return BestSquads{First: first, Second: second}, nil
}
