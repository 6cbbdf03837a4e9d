package usecase

import (
	"context"
	"fmt"

	"github.com/rsl-league/tournament-api/internal/domain/standings"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

type StandingService struct {
	teamRepo team.Repository
}

func NewStandingService(teamRepo team.Repository) *StandingService {
	return &StandingService{teamRepo: teamRepo}
}

// Table derives the current standings from the team records. Every call
// rebuilds the table, so the result always reflects the store.
func (s *StandingService) Table(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingService.Table")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return standings.BuildTable(teams), nil
}

// DefenseTable orders the standings rows by goals conceded, fewest first.
func (s *StandingService) DefenseTable(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingService.DefenseTable")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return standings.RankByDefense(standings.BuildTable(teams)), nil
}
