package httpapi

import (
	"time"

	"github.com/rsl-league/tournament-api/internal/domain/bestxi"
	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/domain/standings"
	"github.com/rsl-league/tournament-api/internal/domain/team"
	"github.com/rsl-league/tournament-api/internal/usecase"
)

type teamDTO struct {
	Name           string   `json:"name"`
	Emoji          string   `json:"emoji"`
	Color          string   `json:"color"`
	CSSClass       string   `json:"css_class"`
	Founded        int      `json:"founded"`
	Wins           int      `json:"wins"`
	Draws          int      `json:"draws"`
	Losses         int      `json:"losses"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	Form           []string `json:"form"`
	MatchesPlayed  int      `json:"matches_played"`
	Points         int      `json:"points"`
	GoalDifference int      `json:"goal_difference"`
}

func teamToDTO(t team.Team) teamDTO {
	form := make([]string, 0, len(t.Form))
	for _, r := range t.Form {
		form = append(form, string(r))
	}

	return teamDTO{
		Name:           t.Name,
		Emoji:          t.Emoji,
		Color:          t.Color,
		CSSClass:       t.CSSClass,
		Founded:        t.Founded,
		Wins:           t.Wins,
		Draws:          t.Draws,
		Losses:         t.Losses,
		GoalsFor:       t.GoalsFor,
		GoalsAgainst:   t.GoalsAgainst,
		Form:           form,
		MatchesPlayed:  t.MatchesPlayed(),
		Points:         t.Points(),
		GoalDifference: t.GoalDifference(),
	}
}

type standingRowDTO struct {
	Position       int     `json:"position"`
	Played         int     `json:"played"`
	Points         int     `json:"points"`
	GoalDifference int     `json:"goal_difference"`
	Team           teamDTO `json:"team"`
}

func standingRowToDTO(row standings.Row) standingRowDTO {
	return standingRowDTO{
		Position:       row.Position,
		Played:         row.Played,
		Points:         row.Points,
		GoalDifference: row.GoalDifference,
		Team:           teamToDTO(row.Team),
	}
}

func standingRowsToDTO(rows []standings.Row) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowToDTO(row))
	}
	return out
}

type playerDTO struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Team          string  `json:"team"`
	Position      string  `json:"position"`
	Photo         string  `json:"photo,omitempty"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	CleanSheets   int     `json:"clean_sheets"`
	MOTM          int     `json:"motm"`
	Contributions int     `json:"contributions"`
	Rating        float64 `json:"rating"`
}

func playerToDTO(p player.Rated) playerDTO {
	return playerDTO{
		ID:            p.ID,
		Name:          p.Name,
		Team:          p.Team,
		Position:      string(p.Position),
		Photo:         p.Photo,
		Goals:         p.Goals,
		Assists:       p.Assists,
		CleanSheets:   p.CleanSheets,
		MOTM:          p.MOTM,
		Contributions: p.Contributions(),
		Rating:        p.Rating,
	}
}

func playersToDTO(players []player.Rated) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type pickDTO struct {
	Row    string    `json:"row"`
	Score  float64   `json:"score"`
	Player playerDTO `json:"player"`
}

type squadDTO []pickDTO

func squadToDTO(squad bestxi.Squad) squadDTO {
	out := make(squadDTO, 0, len(squad))
	for _, pick := range squad {
		out = append(out, pickDTO{
			Row:    string(pick.Row),
			Score:  pick.Score,
			Player: playerToDTO(pick.Player),
		})
	}
	return out
}

type bestSquadsDTO struct {
	First  squadDTO `json:"first"`
	Second squadDTO `json:"second"`
}

type leaderboardEntryDTO struct {
	Rank   int       `json:"rank"`
	Value  float64   `json:"value"`
	Player playerDTO `json:"player"`
}

type statLeaderDTO struct {
	Value  float64   `json:"value"`
	Player playerDTO `json:"player"`
}

func statLeaderToDTO(leader usecase.StatLeader) statLeaderDTO {
	return statLeaderDTO{
		Value:  leader.Value,
		Player: playerToDTO(leader.Player),
	}
}

type teamStatDTO struct {
	Team  string `json:"team"`
	Value int    `json:"value"`
}

func teamStatsToDTO(stats []usecase.TeamStat) []teamStatDTO {
	out := make([]teamStatDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, teamStatDTO{Team: s.Team, Value: s.Value})
	}
	return out
}

type snapshotDTO struct {
	TotalGoals      int     `json:"total_goals"`
	UniqueMatches   float64 `json:"unique_matches"`
	AvgGoalsPerGame float64 `json:"avg_goals_per_game"`

	AvgRating      float64       `json:"avg_rating"`
	HighestRated   statLeaderDTO `json:"highest_rated"`
	LowestRated    statLeaderDTO `json:"lowest_rated"`
	RatedSevenPlus int           `json:"rated_seven_plus"`

	TotalCleanSheets  int           `json:"total_clean_sheets"`
	CleanSheetsByTeam []teamStatDTO `json:"clean_sheets_by_team"`
	DefenderCount     int           `json:"defender_count"`
	DefenderAvgRating float64       `json:"defender_avg_rating"`

	TotalMOTM   int           `json:"total_motm"`
	MOTMWinners int           `json:"motm_winners"`
	MOTMByTeam  []teamStatDTO `json:"motm_by_team"`

	TotalContributions  int           `json:"total_contributions"`
	AvgContributions    float64       `json:"avg_contributions"`
	ContributionsByTeam []teamStatDTO `json:"contributions_by_team"`

	BestDefense  standingRowDTO `json:"best_defense"`
	WorstDefense standingRowDTO `json:"worst_defense"`

	TopScorer          statLeaderDTO `json:"top_scorer"`
	TopAssister        statLeaderDTO `json:"top_assister"`
	CleanSheetLeader   statLeaderDTO `json:"clean_sheet_leader"`
	MOTMLeader         statLeaderDTO `json:"motm_leader"`
	ContributionLeader statLeaderDTO `json:"contribution_leader"`
}

func snapshotToDTO(snap usecase.Snapshot) snapshotDTO {
	return snapshotDTO{
		TotalGoals:      snap.TotalGoals,
		UniqueMatches:   snap.UniqueMatches,
		AvgGoalsPerGame: snap.AvgGoalsPerGame,

		AvgRating:      snap.AvgRating,
		HighestRated:   statLeaderToDTO(snap.HighestRated),
		LowestRated:    statLeaderToDTO(snap.LowestRated),
		RatedSevenPlus: snap.RatedSevenPlus,

		TotalCleanSheets:  snap.TotalCleanSheets,
		CleanSheetsByTeam: teamStatsToDTO(snap.CleanSheetsByTeam),
		DefenderCount:     snap.DefenderCount,
		DefenderAvgRating: snap.DefenderAvgRating,

		TotalMOTM:   snap.TotalMOTM,
		MOTMWinners: snap.MOTMWinners,
		MOTMByTeam:  teamStatsToDTO(snap.MOTMByTeam),

		TotalContributions:  snap.TotalContributions,
		AvgContributions:    snap.AvgContributions,
		ContributionsByTeam: teamStatsToDTO(snap.ContributionsByTeam),

		BestDefense:  standingRowToDTO(snap.BestDefense),
		WorstDefense: standingRowToDTO(snap.WorstDefense),

		TopScorer:          statLeaderToDTO(snap.TopScorer),
		TopAssister:        statLeaderToDTO(snap.TopAssister),
		CleanSheetLeader:   statLeaderToDTO(snap.CleanSheetLeader),
		MOTMLeader:         statLeaderToDTO(snap.MOTMLeader),
		ContributionLeader: statLeaderToDTO(snap.ContributionLeader),
	}
}

type transferProposalDTO struct {
	TopTeam          standingRowDTO `json:"top_team"`
	BottomTeam       standingRowDTO `json:"bottom_team"`
	LeavingTop       playerDTO      `json:"leaving_top"`
	LeavingBottom    playerDTO      `json:"leaving_bottom"`
	Deadline         time.Time      `json:"deadline"`
	RemainingSeconds int64          `json:"remaining_seconds"`
}

func transferProposalToDTO(p usecase.TransferProposal) transferProposalDTO {
	return transferProposalDTO{
		TopTeam:          standingRowToDTO(p.FromTopTeam),
		BottomTeam:       standingRowToDTO(p.FromBottomTeam),
		LeavingTop:       playerToDTO(p.LeavingTop),
		LeavingBottom:    playerToDTO(p.LeavingBottom),
		Deadline:         p.Deadline,
		RemainingSeconds: int64(p.Remaining.Seconds()),
	}
}

type awardSummaryDTO struct {
	Award       string      `json:"award"`
	Title       string      `json:"title"`
	Phase       string      `json:"phase"`
	VotingStart time.Time   `json:"voting_start"`
	ResultsAt   time.Time   `json:"results_at"`
	Candidates  []playerDTO `json:"candidates"`
}

func awardSummaryToDTO(s usecase.AwardSummary) awardSummaryDTO {
	return awardSummaryDTO{
		Award:       string(s.Award),
		Title:       s.Title,
		Phase:       string(s.Phase),
		VotingStart: s.VotingStart,
		ResultsAt:   s.ResultsAt,
		Candidates:  playersToDTO(s.Candidates),
	}
}

type voteCountsDTO struct {
	Award     string      `json:"award"`
	Counts    map[int]int `json:"counts"`
	Total     int         `json:"total"`
	FetchedAt time.Time   `json:"fetched_at"`
}

func voteCountsToDTO(c usecase.VoteCounts) voteCountsDTO {
	return voteCountsDTO{
		Award:     string(c.Award),
		Counts:    c.Counts,
		Total:     c.Total,
		FetchedAt: c.FetchedAt,
	}
}

type awardResultDTO struct {
	Award        string    `json:"award"`
	Winner       playerDTO `json:"winner"`
	Votes        int       `json:"votes"`
	TotalVotes   int       `json:"total_votes"`
	FromFallback bool      `json:"from_fallback"`
}
