package usecase

import (
	"context"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

type stubTeamRepository struct {
	teams []team.Team
	err   error
}

func (r *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)
	return out, nil
}

func (r *stubTeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	if r.err != nil {
		return team.Team{}, false, r.err
	}
	for _, t := range r.teams {
		if t.Name == name {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubPlayerRepository struct {
	players []player.Rated
	err     error
}

func (r *stubPlayerRepository) List(_ context.Context) ([]player.Rated, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]player.Rated, len(r.players))
	copy(out, r.players)
	return out, nil
}

func (r *stubPlayerRepository) GetByID(_ context.Context, id int) (player.Rated, bool, error) {
	if r.err != nil {
		return player.Rated{}, false, r.err
	}
	for _, p := range r.players {
		if p.ID == id {
			return p, true, nil
		}
	}
	return player.Rated{}, false, nil
}

func (r *stubPlayerRepository) ListByTeam(_ context.Context, teamName string) ([]player.Rated, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]player.Rated, 0, len(r.players))
	for _, p := range r.players {
		if p.Team == teamName {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubVoteBackend struct {
	castErr   error
	fetchErr  error
	counts    map[int]int
	total     int
	castCalls int
	lastVote  struct {
		award    string
		deviceID string
		playerID int
	}
}

func (b *stubVoteBackend) CastVote(_ context.Context, award, deviceID string, playerID int) error {
	b.castCalls++
	b.lastVote.award = award
	b.lastVote.deviceID = deviceID
	b.lastVote.playerID = playerID
	return b.castErr
}

func (b *stubVoteBackend) FetchCounts(_ context.Context, _ string) (map[int]int, int, error) {
	if b.fetchErr != nil {
		return nil, 0, b.fetchErr
	}
	return b.counts, b.total, nil
}

func fixtureTeams() []team.Team {
	return []team.Team{
		{
			Name: "FC Thunder", Emoji: "⚡", Color: "#3b82f6", CSSClass: "thunder", Founded: 2026,
			Wins: 3, Draws: 1, Losses: 0, GoalsFor: 12, GoalsAgainst: 4,
			Form: []team.Result{team.ResultWin, team.ResultWin, team.ResultDraw, team.ResultWin},
		},
		{
			Name: "Red Wolves", Emoji: "🐺", Color: "#ef4444", CSSClass: "wolves", Founded: 2026,
			Wins: 4, Draws: 0, Losses: 1, GoalsFor: 12, GoalsAgainst: 9,
			Form: []team.Result{team.ResultWin, team.ResultWin, team.ResultWin, team.ResultLoss},
		},
		{
			Name: "Green Eagles", Emoji: "🦅", Color: "#10b981", CSSClass: "eagles", Founded: 2026,
			Wins: 1, Draws: 1, Losses: 2, GoalsFor: 7, GoalsAgainst: 10,
			Form: []team.Result{team.ResultLoss, team.ResultWin, team.ResultDraw, team.ResultLoss},
		},
	}
}

func fixturePlayers() []player.Rated {
	return []player.Rated{
		{Player: player.Player{ID: 1, Name: "Carlos Rivera", Team: "FC Thunder", Position: player.PositionForward, Goals: 18, Assists: 3, MOTM: 4}, Rating: 10.0},
		{Player: player.Player{ID: 2, Name: "David Okonkwo", Team: "FC Thunder", Position: player.PositionMidfielder, Goals: 3, Assists: 5, MOTM: 1}, Rating: 7.6},
		{Player: player.Player{ID: 3, Name: "Liam O'Brien", Team: "FC Thunder", Position: player.PositionDefender, Goals: 1, Assists: 2, CleanSheets: 3}, Rating: 7.1},
		{Player: player.Player{ID: 4, Name: "Kenji Mori", Team: "FC Thunder", Position: player.PositionDefender, Assists: 1, CleanSheets: 3, MOTM: 1}, Rating: 7.2},
		{Player: player.Player{ID: 5, Name: "Marcus Johnson", Team: "Red Wolves", Position: player.PositionForward, Goals: 6, Assists: 2, MOTM: 2}, Rating: 7.9},
		{Player: player.Player{ID: 6, Name: "Yuki Tanaka", Team: "Red Wolves", Position: player.PositionMidfielder, Goals: 11, Assists: 4, MOTM: 0}, Rating: 8.0},
		{Player: player.Player{ID: 7, Name: "Diego Morales", Team: "Red Wolves", Position: player.PositionDefender, Goals: 1, CleanSheets: 1}, Rating: 6.7},
		{Player: player.Player{ID: 8, Name: "Viktor Petrov", Team: "Red Wolves", Position: player.PositionDefender, CleanSheets: 1}, Rating: 6.6},
		{Player: player.Player{ID: 9, Name: "Ahmed Hassan", Team: "Green Eagles", Position: player.PositionMidfielder, Goals: 2, Assists: 7, MOTM: 3}, Rating: 7.8},
		{Player: player.Player{ID: 10, Name: "Leo Martínez", Team: "Green Eagles", Position: player.PositionForward, Goals: 5, Assists: 4, MOTM: 1}, Rating: 7.4},
		{Player: player.Player{ID: 11, Name: "Samuel Nkemelu", Team: "Green Eagles", Position: player.PositionDefender, Assists: 1, CleanSheets: 2}, Rating: 6.5},
		{Player: player.Player{ID: 12, Name: "Tomás Herrera", Team: "Green Eagles", Position: player.PositionDefender, CleanSheets: 2}, Rating: 6.5},
	}
}
