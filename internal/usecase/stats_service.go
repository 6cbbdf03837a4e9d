package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/standings"
	"github.com/rsl-league/tournament-api/internal/domain/team"
)

// TeamStat is a per-team slice of one aggregate.
type TeamStat struct {
	Team  string
	Value int
}

// StatLeader is the player topping one category together with the value that
// put them there.
type StatLeader struct {
	Player player.Rated
	Value  float64
}

// Snapshot is the full tournament aggregate view. Matches are shared between
// two teams, so UniqueMatches is half the summed matches played, floored at 1
// to keep the per-match averages defined.
type Snapshot struct {
	TotalGoals      int
	UniqueMatches   float64
	AvgGoalsPerGame float64

	AvgRating      float64
	HighestRated   StatLeader
	LowestRated    StatLeader
	RatedSevenPlus int

	TotalCleanSheets  int
	CleanSheetsByTeam []TeamStat
	DefenderCount     int
	DefenderAvgRating float64

	TotalMOTM   int
	MOTMWinners int
	MOTMByTeam  []TeamStat

	TotalContributions  int
	AvgContributions    float64
	ContributionsByTeam []TeamStat

	BestDefense  standings.Row
	WorstDefense standings.Row

	TopScorer          StatLeader
	TopAssister        StatLeader
	CleanSheetLeader   StatLeader
	MOTMLeader         StatLeader
	ContributionLeader StatLeader
}

type StatsService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewStatsService(teamRepo team.Repository, playerRepo player.Repository) *StatsService {
	return &StatsService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func leaderBy(players []player.Rated, value func(player.Rated) float64) StatLeader {
	best := StatLeader{}
	for _, p := range players {
		v := value(p)
		switch {
		case best.Player.ID == 0,
			v > best.Value,
			v == best.Value && p.Rating > best.Player.Rating,
			v == best.Value && p.Rating == best.Player.Rating && p.ID < best.Player.ID:
			best = StatLeader{Player: p, Value: v}
		}
	}
	return best
}

// Snapshot aggregates the whole tournament into one view.
func (s *StatsService) Snapshot(ctx context.Context) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.Snapshot")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list players: %w", err)
	}

	table := standings.BuildTable(teams)

	out := Snapshot{}

	totalMatches := 0
	for _, row := range table {
		out.TotalGoals += row.Team.GoalsFor
		totalMatches += row.Played
	}
	out.UniqueMatches = math.Max(1, float64(totalMatches)/2)
	out.AvgGoalsPerGame = round1(float64(out.TotalGoals) / out.UniqueMatches)

	if len(players) > 0 {
		ratingSum := 0.0
		defenderSum := 0.0
		for _, p := range players {
			ratingSum += p.Rating
			if p.Rating >= 7.0 {
				out.RatedSevenPlus++
			}
			if p.Position == player.PositionDefender {
				out.DefenderCount++
				defenderSum += p.Rating
			}
			out.TotalCleanSheets += p.CleanSheets
			out.TotalMOTM += p.MOTM
			if p.MOTM > 0 {
				out.MOTMWinners++
			}
			out.TotalContributions += p.Contributions()
		}
		out.AvgRating = round1(ratingSum / float64(len(players)))
		if out.DefenderCount > 0 {
			out.DefenderAvgRating = round1(defenderSum / float64(out.DefenderCount))
		}
		out.AvgContributions = round1(float64(out.TotalContributions) / float64(len(players)))

		out.HighestRated = leaderBy(players, func(p player.Rated) float64 { return p.Rating })
		out.LowestRated = leaderBy(players, func(p player.Rated) float64 { return -p.Rating })
		out.LowestRated.Value = -out.LowestRated.Value
		out.TopScorer = leaderBy(players, func(p player.Rated) float64 { return float64(p.Goals) })
		out.TopAssister = leaderBy(players, func(p player.Rated) float64 { return float64(p.Assists) })
		out.CleanSheetLeader = leaderBy(players, func(p player.Rated) float64 { return float64(p.CleanSheets) })
		out.MOTMLeader = leaderBy(players, func(p player.Rated) float64 { return float64(p.MOTM) })
		out.ContributionLeader = leaderBy(players, func(p player.Rated) float64 { return float64(p.Contributions()) })
	}

	for _, row := range table {
		cs, motm, contrib := 0, 0, 0
		for _, p := range players {
			if p.Team != row.Team.Name {
				continue
			}
			cs += p.CleanSheets
			motm += p.MOTM
			contrib += p.Contributions()
		}
		out.CleanSheetsByTeam = append(out.CleanSheetsByTeam, TeamStat{Team: row.Team.Name, Value: cs})
		out.MOTMByTeam = append(out.MOTMByTeam, TeamStat{Team: row.Team.Name, Value: motm})
		out.ContributionsByTeam = append(out.ContributionsByTeam, TeamStat{Team: row.Team.Name, Value: contrib})
	}

	if len(table) > 0 {
		byDefense := standings.RankByDefense(table)
		out.BestDefense = byDefense[0]
		out.WorstDefense = byDefense[len(byDefense)-1]
	}

	sortTeamStats(out.CleanSheetsByTeam)
	sortTeamStats(out.MOTMByTeam)
	sortTeamStats(out.ContributionsByTeam)

	return out, nil
}

// sortTeamStats orders per-team splits by value descending, name ascending.
func sortTeamStats(stats []TeamStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Team < stats[j].Team
	})
}
