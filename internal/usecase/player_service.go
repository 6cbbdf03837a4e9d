package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rsl-league/tournament-api/internal/domain/player"
)

// LeaderboardCategory names one stat a leaderboard can rank by.
type LeaderboardCategory string

const (
	LeaderboardGoals         LeaderboardCategory = "goals"
	LeaderboardAssists       LeaderboardCategory = "assists"
	LeaderboardRating        LeaderboardCategory = "rating"
	LeaderboardCleanSheets   LeaderboardCategory = "cleansheets"
	LeaderboardMOTM          LeaderboardCategory = "motm"
	LeaderboardContributions LeaderboardCategory = "contributions"
)

// LeaderboardEntry pairs a ranked player with the value of the ranked stat.
type LeaderboardEntry struct {
	Rank   int
	Player player.Rated
	Value  float64
}

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Rated, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *PlayerService) GetByID(ctx context.Context, id int) (player.Rated, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetByID")
	defer span.End()

	if id <= 0 {
		return player.Rated{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Rated{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Rated{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	return p, nil
}

func categoryValue(category LeaderboardCategory, p player.Rated) float64 {
	switch category {
	case LeaderboardGoals:
		return float64(p.Goals)
	case LeaderboardAssists:
		return float64(p.Assists)
	case LeaderboardRating:
		return p.Rating
	case LeaderboardCleanSheets:
		return float64(p.CleanSheets)
	case LeaderboardMOTM:
		return float64(p.MOTM)
	case LeaderboardContributions:
		return float64(p.Contributions())
	default:
		return 0
	}
}

// Leaderboard ranks all players by one stat, highest first. Ties fall back to
// rating descending, then player id ascending. limit <= 0 returns everyone.
func (s *PlayerService) Leaderboard(ctx context.Context, category LeaderboardCategory, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Leaderboard")
	defer span.End()

	switch category {
	case LeaderboardGoals, LeaderboardAssists, LeaderboardRating,
		LeaderboardCleanSheets, LeaderboardMOTM, LeaderboardContributions:
	default:
		return nil, fmt.Errorf("%w: unknown leaderboard category %q", ErrInvalidInput, strings.TrimSpace(string(category)))
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, LeaderboardEntry{
			Player: p,
			Value:  categoryValue(category, p),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Player.Rating != b.Player.Rating {
			return a.Player.Rating > b.Player.Rating
		}
		return a.Player.ID < b.Player.ID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return entries, nil
}
