package memory

import (
	"context"
	"sync"

	"github.com/rsl-league/tournament-api/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Rated
	byID    map[int]player.Rated
	byTeam  map[string][]player.Rated
}

// NewPlayerRepository takes players that already carry their materialized
// rating. Registration order is preserved by List and ListByTeam.
func NewPlayerRepository(players []player.Rated) *PlayerRepository {
	stored := make([]player.Rated, len(players))
	copy(stored, players)

	byID := make(map[int]player.Rated, len(stored))
	byTeam := make(map[string][]player.Rated)
	for _, p := range stored {
		byID[p.ID] = p
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	return &PlayerRepository{
		players: stored,
		byID:    byID,
		byTeam:  byTeam,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Rated, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Rated, len(r.players))
	copy(out, r.players)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int) (player.Rated, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamName string) ([]player.Rated, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.byTeam[teamName]
	out := make([]player.Rated, 0, len(players))
	out = append(out, players...)

	return out, nil
}
