package rating

import (
	"testing"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

func TestCompute_WorkedExample(t *testing.T) {
	t.Parallel()

	// Forward with 18 goals, 3 assists, 4 MOTM on a 3W/1D team:
	// 6.0 + 2.52 + 0.21 + 0.8 + (0.75+0.075)*0.6 = 10.025 -> clamped to 10.0.
	p := player.Player{
		ID:       1,
		Name:     "Carlos Rivera",
		Position: player.PositionForward,
		Goals:    18,
		Assists:  3,
		MOTM:     4,
	}
	th := team.Team{Name: "FC Thunder", Wins: 3, Draws: 1, GoalsFor: 12, GoalsAgainst: 4}

	if got := Compute(p, th, true); got != 10.0 {
		t.Fatalf("expected 10.0, got %v", got)
	}
}

func TestCompute_ClampHoldsForAdversarialStats(t *testing.T) {
	t.Parallel()

	p := player.Player{ID: 1, Name: "X", Position: player.PositionForward, Goals: 10000}
	if got := Compute(p, team.Team{}, false); got != 10.0 {
		t.Fatalf("expected exact 10.0 for huge stats, got %v", got)
	}

	zero := player.Player{ID: 2, Name: "Y", Position: player.PositionDefender}
	if got := Compute(zero, team.Team{}, false); got != 6.0 {
		t.Fatalf("expected floor 6.0 for empty stats, got %v", got)
	}
}

func TestCompute_Bounds(t *testing.T) {
	t.Parallel()

	positions := []player.Position{
		player.PositionForward,
		player.PositionMidfielder,
		player.PositionDefender,
		player.PositionUnknown,
	}
	strongTeam := team.Team{Name: "T", Wins: 9, Draws: 1}

	for _, pos := range positions {
		for goals := 0; goals <= 40; goals += 8 {
			for assists := 0; assists <= 20; assists += 5 {
				p := player.Player{ID: 1, Name: "P", Position: pos, Goals: goals, Assists: assists, CleanSheets: 3, MOTM: 2}
				got := Compute(p, strongTeam, true)
				if got < 6.0 || got > 10.0 {
					t.Fatalf("rating %v out of [6.0, 10.0] for pos=%s goals=%d assists=%d", got, pos, goals, assists)
				}
			}
		}
	}
}

func TestCompute_UnknownPositionUsesMidfielderWeights(t *testing.T) {
	t.Parallel()

	stats := player.Player{ID: 1, Name: "P", Goals: 4, Assists: 6, CleanSheets: 2}

	unknown := stats
	unknown.Position = player.PositionUnknown
	mid := stats
	mid.Position = player.PositionMidfielder

	if gotU, gotM := Compute(unknown, team.Team{}, false), Compute(mid, team.Team{}, false); gotU != gotM {
		t.Fatalf("unknown position should rate like a midfielder: %v != %v", gotU, gotM)
	}
}

func TestCompute_MissingTeamDropsBonus(t *testing.T) {
	t.Parallel()

	p := player.Player{ID: 1, Name: "P", Position: player.PositionMidfielder, Goals: 4, Assists: 5}

	withTeam := Compute(p, team.Team{Name: "T", Wins: 4}, true)
	withoutTeam := Compute(p, team.Team{}, false)

	if withoutTeam >= withTeam {
		t.Fatalf("expected team bonus to raise the rating: with=%v without=%v", withTeam, withoutTeam)
	}
	// 6.0 + 4*0.09 + 5*0.12 = 6.96 -> 7.0
	if withoutTeam != 7.0 {
		t.Fatalf("unexpected no-team rating %v", withoutTeam)
	}

	// A team with zero matches played also contributes nothing.
	zeroMatches := Compute(p, team.Team{Name: "T"}, true)
	if zeroMatches != withoutTeam {
		t.Fatalf("zero-match team must rate like a missing team: %v != %v", zeroMatches, withoutTeam)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	p := player.Player{ID: 9, Name: "Ahmed Hassan", Position: player.PositionMidfielder, Goals: 2, Assists: 7, MOTM: 3}
	eagles := team.Team{Name: "Green Eagles", Wins: 1, Draws: 1, Losses: 2, GoalsFor: 7, GoalsAgainst: 10}

	first := Compute(p, eagles, true)
	second := Compute(p, eagles, true)
	if first != second {
		t.Fatalf("rating must be deterministic: %v != %v", first, second)
	}
}

func TestWeightsFor(t *testing.T) {
	t.Parallel()

	if w := WeightsFor(player.PositionForward); w.Goals != 0.14 || w.Assists != 0.07 || w.CleanSheets != 0.03 {
		t.Fatalf("unexpected forward weights: %+v", w)
	}
	if w := WeightsFor(player.PositionDefender); w.CleanSheets != 0.15 {
		t.Fatalf("unexpected defender weights: %+v", w)
	}
	if w, mid := WeightsFor(player.PositionUnknown), WeightsFor(player.PositionMidfielder); w != mid {
		t.Fatalf("unknown position should use midfielder weights: %+v != %+v", w, mid)
	}
}
