package rating

import (
	"math"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

const (
	base      = 6.0
	minRating = 6.0
	maxRating = 10.0

	motmBonus      = 0.2
	drawWeight     = 0.3
	teamBonusScale = 0.6
)

// Weights is the per-position stat weighting triple.
type Weights struct {
	Goals       float64
	Assists     float64
	CleanSheets float64
}

var weightsByPosition = map[player.Position]Weights{
	player.PositionForward:    {Goals: 0.14, Assists: 0.07, CleanSheets: 0.03},
	player.PositionMidfielder: {Goals: 0.09, Assists: 0.12, CleanSheets: 0.05},
	player.PositionDefender:   {Goals: 0.05, Assists: 0.05, CleanSheets: 0.15},
}

// WeightsFor is total: unknown positions use the midfielder triple.
func WeightsFor(pos player.Position) Weights {
	if w, ok := weightsByPosition[pos]; ok {
		return w
	}
	return weightsByPosition[player.PositionMidfielder]
}

// Compute derives the auto rating for one player. hasTeam reports whether the
// player's team reference resolved; a dangling reference simply drops the
// team-strength bonus. The result is clamped to [6.0, 10.0] and rounded to
// one decimal place.
func Compute(p player.Player, t team.Team, hasTeam bool) float64 {
	w := WeightsFor(p.Position)

	score := base
	score += float64(p.Goals) * w.Goals
	score += float64(p.Assists) * w.Assists
	score += float64(p.CleanSheets) * w.CleanSheets
	score += float64(p.MOTM) * motmBonus

	if hasTeam {
		if mp := t.MatchesPlayed(); mp > 0 {
			winRate := float64(t.Wins) / float64(mp)
			drawBonus := float64(t.Draws) / float64(mp) * drawWeight
			score += (winRate + drawBonus) * teamBonusScale
		}
	}

	return round1(clamp(score))
}

func clamp(v float64) float64 {
	return math.Min(maxRating, math.Max(minRating, v))
}

// round1 rounds half up on the tenths digit.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
