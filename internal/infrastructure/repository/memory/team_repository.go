package memory

import (
	"context"
	"sync"

	"github.com/rsl-league/tournament-api/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	byName map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	stored := make([]team.Team, len(teams))
	copy(stored, teams)

	byName := make(map[string]team.Team, len(stored))
	for _, t := range stored {
		byName[t.Name] = t
	}

	return &TeamRepository{
		teams:  stored,
		byName: byName,
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	return t, ok, nil
}
