package memory

import (
	"context"
	"sync"
)

// VoteRepository is the in-process vote tally used when no external vote
// backend is configured. One vote per device per award; a device voting
// again replaces its previous pick.
type VoteRepository struct {
	mu      sync.RWMutex
	byAward map[string]map[string]int
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{
		byAward: make(map[string]map[string]int),
	}
}

func (r *VoteRepository) CastVote(_ context.Context, award, deviceID string, playerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	votes, ok := r.byAward[award]
	if !ok {
		votes = make(map[string]int)
		r.byAward[award] = votes
	}
	votes[deviceID] = playerID

	return nil
}

func (r *VoteRepository) FetchCounts(_ context.Context, award string) (map[int]int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	votes := r.byAward[award]
	counts := make(map[int]int, len(votes))
	total := 0
	for _, playerID := range votes {
		counts[playerID]++
		total++
	}

	return counts, total, nil
}
