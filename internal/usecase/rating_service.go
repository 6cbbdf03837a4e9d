package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/rating"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

// RatingService materializes player ratings once at startup. The raw records
// stay untouched; the output is a parallel slice of enriched copies in the
// same order as the input.
type RatingService struct {
	maxWorkers int
}

func NewRatingService(maxWorkers int) *RatingService {
	if maxWorkers < 1 {
		maxWorkers = runtime.NumCPU()
	}
	return &RatingService{maxWorkers: maxWorkers}
}

func (s *RatingService) MaterializeRatings(ctx context.Context, teams []team.Team, players []player.Player) ([]player.Rated, error) {
	_, span := startUsecaseSpan(ctx, "RatingService.MaterializeRatings")
	defer span.End()

	teamsByName := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamsByName[t.Name] = t
	}

	workerCount := s.maxWorkers
	if workerCount > len(players) {
		workerCount = len(players)
	}
	if workerCount < 1 {
		return []player.Rated{}, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rated := make([]player.Rated, len(players))

	var workers sync.WaitGroup
	for i, p := range players {
		i, p := i, p
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			t, hasTeam := teamsByName[p.Team]
			rated[i] = player.Rated{
				Player: p,
				Rating: rating.Compute(p, t, hasTeam),
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit rating task: %w", err)
		}
	}
	workers.Wait()

	return rated, nil
}
