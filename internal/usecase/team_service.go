package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) GetByName(ctx context.Context, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetByName")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}

	return t, nil
}

// lineupOrder fixes the display order of a team sheet, attackers first.
var lineupOrder = map[player.Position]int{
	player.PositionForward:    0,
	player.PositionMidfielder: 1,
	player.PositionDefender:   2,
	player.PositionUnknown:    3,
}

// Lineup returns the team's players grouped by position, forwards first and
// unknowns last, id ascending within a group.
func (s *TeamService) Lineup(ctx context.Context, teamName string) ([]player.Rated, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Lineup")
	defer span.End()

	if _, err := s.GetByName(ctx, teamName); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamName)
	if err != nil {
		return nil, fmt.Errorf("list team players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		a, b := lineupOrder[players[i].Position], lineupOrder[players[j].Position]
		if a != b {
			return a < b
		}
		return players[i].ID < players[j].ID
	})

	return players, nil
}
