package memory

import (
	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{
			Name:         "FC Thunder",
			Emoji:        "⚡",
			Color:        "#3b82f6",
			CSSClass:     "thunder",
			Founded:      2026,
			Wins:         3,
			Draws:        1,
			Losses:       0,
			GoalsFor:     12,
			GoalsAgainst: 4,
			Form:         []team.Result{team.ResultWin, team.ResultWin, team.ResultDraw, team.ResultWin},
		},
		{
			Name:         "Red Wolves",
			Emoji:        "🐺",
			Color:        "#ef4444",
			CSSClass:     "wolves",
			Founded:      2026,
			Wins:         4,
			Draws:        0,
			Losses:       1,
			GoalsFor:     12,
			GoalsAgainst: 9,
			Form:         []team.Result{team.ResultWin, team.ResultWin, team.ResultWin, team.ResultLoss},
		},
		{
			Name:         "Green Eagles",
			Emoji:        "🦅",
			Color:        "#10b981",
			CSSClass:     "eagles",
			Founded:      2026,
			Wins:         1,
			Draws:        1,
			Losses:       2,
			GoalsFor:     7,
			GoalsAgainst: 10,
			Form:         []team.Result{team.ResultLoss, team.ResultWin, team.ResultDraw, team.ResultLoss},
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Carlos Rivera", Team: "FC Thunder", Position: player.PositionForward, Goals: 18, Assists: 3, CleanSheets: 0, MOTM: 4},
		{ID: 2, Name: "David Okonkwo", Team: "FC Thunder", Position: player.PositionMidfielder, Goals: 3, Assists: 5, CleanSheets: 0, MOTM: 1},
		{ID: 3, Name: "Liam O'Brien", Team: "FC Thunder", Position: player.PositionDefender, Goals: 1, Assists: 2, CleanSheets: 3, MOTM: 0},
		{ID: 4, Name: "Kenji Mori", Team: "FC Thunder", Position: player.PositionDefender, Goals: 0, Assists: 1, CleanSheets: 3, MOTM: 1},
		{ID: 5, Name: "Marcus Johnson", Team: "Red Wolves", Position: player.PositionForward, Goals: 6, Assists: 2, CleanSheets: 0, MOTM: 2},
		{ID: 6, Name: "Yuki Tanaka", Team: "Red Wolves", Position: player.PositionMidfielder, Goals: 11, Assists: 4, CleanSheets: 0, MOTM: 0},
		{ID: 7, Name: "Diego Morales", Team: "Red Wolves", Position: player.PositionDefender, Goals: 1, Assists: 0, CleanSheets: 1, MOTM: 0},
		{ID: 8, Name: "Viktor Petrov", Team: "Red Wolves", Position: player.PositionDefender, Goals: 0, Assists: 0, CleanSheets: 1, MOTM: 0},
		{ID: 9, Name: "Ahmed Hassan", Team: "Green Eagles", Position: player.PositionMidfielder, Goals: 2, Assists: 7, CleanSheets: 0, MOTM: 3},
		{ID: 10, Name: "Leo Martínez", Team: "Green Eagles", Position: player.PositionForward, Goals: 5, Assists: 4, CleanSheets: 0, MOTM: 1},
		{ID: 11, Name: "Samuel Nkemelu", Team: "Green Eagles", Position: player.PositionDefender, Goals: 0, Assists: 1, CleanSheets: 2, MOTM: 0},
		{ID: 12, Name: "Tomás Herrera", Team: "Green Eagles", Position: player.PositionDefender, Goals: 0, Assists: 0, CleanSheets: 2, MOTM: 0},
	}
}
