package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/standings"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

// TransferProposal is the rumored swap between the table's extremes: the
// weakest player of the leading team trades places with the weakest player of
// the bottom team.
type TransferProposal struct {
	FromTopTeam    standings.Row
	FromBottomTeam standings.Row
	LeavingTop     player.Rated
	LeavingBottom  player.Rated
	Deadline       time.Time
	Remaining      time.Duration
}

type TransferService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	now        func() time.Time
}

func NewTransferService(teamRepo team.Repository, playerRepo player.Repository) *TransferService {
	return &TransferService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

// NextSundayNoon is the closing instant of the current transfer window. On a
// Sunday at or after noon the window has already rolled over to next week.
func NextSundayNoon(now time.Time) time.Time {
	daysUntilSunday := (7 - int(now.Weekday())) % 7
	if daysUntilSunday == 0 && now.Hour() >= 12 {
		daysUntilSunday = 7
	}
	next := now.AddDate(0, 0, daysUntilSunday)
	return time.Date(next.Year(), next.Month(), next.Day(), 12, 0, 0, 0, now.Location())
}

func (s *TransferService) Window(ctx context.Context) (TransferProposal, error) {
	ctx, span := startUsecaseSpan(ctx, "TransferService.Window")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return TransferProposal{}, fmt.Errorf("list teams: %w", err)
	}

	table := standings.BuildTable(teams)
	if len(table) < 2 {
		return TransferProposal{}, fmt.Errorf("%w: transfer window needs at least two teams", ErrNotFound)
	}

	top := table[0]
	bottom := table[len(table)-1]

	leavingTop, ok, err := s.worstRatedOf(ctx, top.Team.Name)
	if err != nil {
		return TransferProposal{}, err
	}
	if !ok {
		return TransferProposal{}, fmt.Errorf("%w: team %s has no players", ErrNotFound, top.Team.Name)
	}

	leavingBottom, ok, err := s.worstRatedOf(ctx, bottom.Team.Name)
	if err != nil {
		return TransferProposal{}, err
	}
	if !ok {
		return TransferProposal{}, fmt.Errorf("%w: team %s has no players", ErrNotFound, bottom.Team.Name)
	}

	now := s.now()
	deadline := NextSundayNoon(now)

	return TransferProposal{
		FromTopTeam:    top,
		FromBottomTeam: bottom,
		LeavingTop:     leavingTop,
		LeavingBottom:  leavingBottom,
		Deadline:       deadline,
		Remaining:      deadline.Sub(now),
	}, nil
}

// worstRatedOf finds the lowest-rated player on a team, lower id on ties.
func (s *TransferService) worstRatedOf(ctx context.Context, teamName string) (player.Rated, bool, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamName)
	if err != nil {
		return player.Rated{}, false, fmt.Errorf("list team players: %w", err)
	}
	if len(players) == 0 {
		return player.Rated{}, false, nil
	}

	worst := players[0]
	for _, p := range players[1:] {
		if p.Rating < worst.Rating || (p.Rating == worst.Rating && p.ID < worst.ID) {
			worst = p
		}
	}

	return worst, true, nil
}
